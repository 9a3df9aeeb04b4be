package follows

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/univoz/univoz-backend/internal/apperr"
	"github.com/univoz/univoz-backend/internal/models"
	"github.com/univoz/univoz-backend/internal/testdb"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	db, teardown, err := testdb.Start(context.Background())
	if err != nil {
		log.Fatalf("test database setup failed: %v", err)
	}
	testDB = db

	code := m.Run()
	teardown()
	os.Exit(code)
}

func edgeCount(t *testing.T, followerID, followingID int) int64 {
	t.Helper()

	var count int64
	err := testDB.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		t.Fatalf("failed to count edges: %v", err)
	}
	return count
}

func TestSelfFollowRejected(t *testing.T) {
	graph := NewGraph(testDB)
	user := testdb.CreateUser(t, testDB, "narciso")

	err := graph.Follow(user.ID, user.ID)
	if !apperr.IsCode(err, apperr.CodeInvalidOperation) {
		t.Fatalf("expected INVALID_OPERATION, got %v", err)
	}
	if n := edgeCount(t, user.ID, user.ID); n != 0 {
		t.Errorf("self-follow mutated the edge set: %d edges", n)
	}
}

func TestFollowMissingTarget(t *testing.T) {
	graph := NewGraph(testDB)
	user := testdb.CreateUser(t, testDB, "follower")

	if err := graph.Follow(user.ID, 999999999); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestFollowIdempotent(t *testing.T) {
	graph := NewGraph(testDB)
	u := testdb.CreateUser(t, testDB, "ana")
	v := testdb.CreateUser(t, testDB, "bia")

	if err := graph.Follow(u.ID, v.ID); err != nil {
		t.Fatalf("first follow failed: %v", err)
	}
	if err := graph.Follow(u.ID, v.ID); err != nil {
		t.Fatalf("second follow should be a no-op, got %v", err)
	}

	if n := edgeCount(t, u.ID, v.ID); n != 1 {
		t.Errorf("expected exactly one edge, got %d", n)
	}
	count, err := graph.FollowerCount(v.ID)
	if err != nil {
		t.Fatalf("FollowerCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("FollowerCount = %d, want 1", count)
	}
}

func TestUnfollowAbsentEdgeIsNoop(t *testing.T) {
	graph := NewGraph(testDB)
	u := testdb.CreateUser(t, testDB, "ana")
	v := testdb.CreateUser(t, testDB, "bia")

	if err := graph.Unfollow(u.ID, v.ID); err != nil {
		t.Fatalf("unfollow of absent edge should be a no-op, got %v", err)
	}
}

func TestUnfollowMissingTarget(t *testing.T) {
	graph := NewGraph(testDB)
	u := testdb.CreateUser(t, testDB, "ana")

	if err := graph.Unfollow(u.ID, 999999999); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestUnfollowThenList(t *testing.T) {
	graph := NewGraph(testDB)
	u := testdb.CreateUser(t, testDB, "ana")
	v := testdb.CreateUser(t, testDB, "bia")

	if err := graph.Follow(u.ID, v.ID); err != nil {
		t.Fatalf("follow failed: %v", err)
	}
	if err := graph.Unfollow(u.ID, v.ID); err != nil {
		t.Fatalf("unfollow failed: %v", err)
	}

	followers, err := graph.Followers(v.ID)
	if err != nil {
		t.Fatalf("Followers failed: %v", err)
	}
	for _, f := range followers {
		if f.ID == u.ID {
			t.Errorf("unfollowed user still listed as follower")
		}
	}

	following, err := graph.FollowingCount(u.ID)
	if err != nil {
		t.Fatalf("FollowingCount failed: %v", err)
	}
	if following != 0 {
		t.Errorf("FollowingCount = %d, want 0", following)
	}
}

func TestListingsAndCounts(t *testing.T) {
	graph := NewGraph(testDB)
	target := testdb.CreateUser(t, testDB, "popular")

	var followers []*models.User
	for i := 0; i < 3; i++ {
		f := testdb.CreateUser(t, testDB, fmt.Sprintf("fan%d", i))
		if err := graph.Follow(f.ID, target.ID); err != nil {
			t.Fatalf("follow failed: %v", err)
		}
		followers = append(followers, f)
		time.Sleep(5 * time.Millisecond) // distinct created_at for ordering
	}

	got, err := graph.Followers(target.ID)
	if err != nil {
		t.Fatalf("Followers failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 followers, got %d", len(got))
	}
	// Newest edge first.
	if got[0].ID != followers[2].ID || got[2].ID != followers[0].ID {
		t.Errorf("followers not ordered newest first: %d,%d,%d", got[0].ID, got[1].ID, got[2].ID)
	}

	count, err := graph.FollowerCount(target.ID)
	if err != nil {
		t.Fatalf("FollowerCount failed: %v", err)
	}
	if count != 3 {
		t.Errorf("FollowerCount = %d, want 3", count)
	}

	mutual, err := graph.Following(followers[0].ID)
	if err != nil {
		t.Fatalf("Following failed: %v", err)
	}
	if len(mutual) != 1 || mutual[0].ID != target.ID {
		t.Errorf("unexpected following list: %+v", mutual)
	}

	ok, err := graph.IsFollowing(followers[0].ID, target.ID)
	if err != nil {
		t.Fatalf("IsFollowing failed: %v", err)
	}
	if !ok {
		t.Error("IsFollowing = false, want true")
	}
}

func TestConcurrentDuplicateFollows(t *testing.T) {
	graph := NewGraph(testDB)
	u := testdb.CreateUser(t, testDB, "racer")
	v := testdb.CreateUser(t, testDB, "target")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := graph.Follow(u.ID, v.ID); err != nil {
				t.Errorf("concurrent follow surfaced an error: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := edgeCount(t, u.ID, v.ID); n != 1 {
		t.Errorf("expected exactly one edge after concurrent follows, got %d", n)
	}
}

func TestDeleteUserCascadesEdges(t *testing.T) {
	graph := NewGraph(testDB)
	doomed := testdb.CreateUser(t, testDB, "doomed")
	other := testdb.CreateUser(t, testDB, "other")

	if err := graph.Follow(doomed.ID, other.ID); err != nil {
		t.Fatalf("follow failed: %v", err)
	}
	if err := graph.Follow(other.ID, doomed.ID); err != nil {
		t.Fatalf("follow failed: %v", err)
	}

	if err := testDB.Delete(&models.User{}, doomed.ID).Error; err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var remaining int64
	testDB.Model(&models.Follow{}).
		Where("follower_id = ? OR following_id = ?", doomed.ID, doomed.ID).
		Count(&remaining)
	if remaining != 0 {
		t.Errorf("expected edges to cascade away, found %d", remaining)
	}
}
