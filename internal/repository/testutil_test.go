package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ideahub/ideahub-api/internal/database"
	"github.com/ideahub/ideahub-api/internal/model"
	"github.com/ideahub/ideahub-api/internal/repository"
)

// newTestDB opens an in-memory sqlite database with the real embedded
// migrations applied.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db, "sqlite"); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *sql.DB, email, username string) *model.User {
	t.Helper()

	user := &model.User{Email: email, Username: username, PasswordHash: "hash"}
	if err := repository.NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedIdea(t *testing.T, db *sql.DB, description string, posterID *string) *model.Idea {
	t.Helper()

	idea := &model.Idea{
		URL:         "https://example.org/" + description,
		Description: description,
		PosterID:    posterID,
	}
	if err := repository.NewIdeaRepository(db).Create(context.Background(), idea); err != nil {
		t.Fatalf("failed to seed idea: %v", err)
	}
	return idea
}

func seedReaction(t *testing.T, db *sql.DB, userID, ideaID, kind string, agreement float64) {
	t.Helper()

	r := &model.Reaction{UserID: userID, IdeaID: ideaID, Kind: kind, Agreement: agreement}
	if err := repository.NewReactionRepository(db).Upsert(context.Background(), r); err != nil {
		t.Fatalf("failed to seed reaction: %v", err)
	}
}
