// Package testdb boots a throwaway postgres container for package tests.
// Both core engines are transaction-shaped, so they are tested against a
// real database rather than mocks.
package testdb

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/univoz/univoz-backend/internal/database"
	"github.com/univoz/univoz-backend/internal/models"
)

// Start launches a postgres container, migrates the schema and returns a
// gorm handle plus a teardown func. Intended for TestMain so one container
// serves a whole test package.
func Start(ctx context.Context) (*gorm.DB, func(), error) {
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("univoz_test"),
		tcpostgres.WithUsername("univoz"),
		tcpostgres.WithPassword("univoz"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	teardown := func() {
		_ = ctr.Terminate(context.Background())
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		teardown()
		return nil, nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		teardown()
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		teardown()
		return nil, nil, err
	}

	return db, teardown, nil
}

// CreateUser inserts a user with generated-unique username/email.
func CreateUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := models.User{
		Name:     name,
		Username: fmt.Sprintf("%s_%d", name, time.Now().UnixNano()),
		Email:    fmt.Sprintf("%s_%d@example.edu", name, time.Now().UnixNano()),
		Password: "not-a-real-hash",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

// CreatePost inserts a post owned by the given user.
func CreatePost(t *testing.T, db *gorm.DB, ownerID int, content string) *models.Post {
	t.Helper()

	post := models.Post{Content: content, OwnerID: ownerID}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}
	return &post
}
