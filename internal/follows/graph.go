package follows

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/univoz/univoz-backend/internal/apperr"
	"github.com/univoz/univoz-backend/internal/models"
)

const pgUniqueViolation = "23505"

// Graph owns the directed follow relation between users. There are no stored
// counts; listings and cardinalities are computed from the edge set on every
// read.
type Graph struct {
	db *gorm.DB
}

func NewGraph(db *gorm.DB) *Graph {
	return &Graph{db: db}
}

// Follow inserts the (follower, following) edge. Following yourself is
// rejected; following someone you already follow is a no-op. Concurrent
// duplicate follows race on the composite unique index and the loser is
// treated as the no-op case, not an error.
func (g *Graph) Follow(followerID, followingID int) error {
	if followerID == followingID {
		return apperr.InvalidOperation("you cannot follow yourself")
	}

	var target models.User
	if err := g.db.First(&target, followingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal("failed to load user", err)
	}

	edge := models.Follow{FollowerID: followerID, FollowingID: followingID}
	if err := g.db.Create(&edge).Error; err != nil {
		if isDuplicateEdge(err) {
			return nil
		}
		return apperr.Internal("failed to follow user", err)
	}
	return nil
}

// Unfollow removes the edge if present. Unfollowing someone you do not
// follow is a no-op.
func (g *Graph) Unfollow(followerID, followingID int) error {
	var target models.User
	if err := g.db.First(&target, followingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal("failed to load user", err)
	}

	err := g.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return apperr.Internal("failed to unfollow user", err)
	}
	return nil
}

// Followers lists the users following userID, newest edge first.
func (g *Graph) Followers(userID int) ([]models.User, error) {
	var edges []models.Follow
	err := g.db.Where("following_id = ?", userID).
		Preload("Follower").Order("created_at desc").Find(&edges).Error
	if err != nil {
		return nil, apperr.Internal("failed to list followers", err)
	}

	users := make([]models.User, 0, len(edges))
	for _, edge := range edges {
		users = append(users, edge.Follower)
	}
	return users, nil
}

// Following lists the users userID follows, newest edge first.
func (g *Graph) Following(userID int) ([]models.User, error) {
	var edges []models.Follow
	err := g.db.Where("follower_id = ?", userID).
		Preload("Following").Order("created_at desc").Find(&edges).Error
	if err != nil {
		return nil, apperr.Internal("failed to list following", err)
	}

	users := make([]models.User, 0, len(edges))
	for _, edge := range edges {
		users = append(users, edge.Following)
	}
	return users, nil
}

func (g *Graph) FollowerCount(userID int) (int64, error) {
	var count int64
	err := g.db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, apperr.Internal("failed to count followers", err)
	}
	return count, nil
}

func (g *Graph) FollowingCount(userID int) (int64, error) {
	var count int64
	err := g.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, apperr.Internal("failed to count following", err)
	}
	return count, nil
}

// IsFollowing reports whether the edge (followerID, followingID) exists.
func (g *Graph) IsFollowing(followerID, followingID int) (bool, error) {
	var count int64
	err := g.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal("failed to check follow edge", err)
	}
	return count > 0, nil
}

func isDuplicateEdge(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
