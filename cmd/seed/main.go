// Development seeding: sources, demo users, ideas and a spread of
// reactions so the recommendation endpoints return data locally.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/ideahub/ideahub-api/internal/config"
	"github.com/ideahub/ideahub-api/internal/crypto"
	"github.com/ideahub/ideahub-api/internal/database"
	"github.com/ideahub/ideahub-api/internal/model"
	"github.com/ideahub/ideahub-api/internal/repository"
)

var sourceNames = []string{
	"Scott Alexander",
	"Ross Douthat",
	"Matt Yglesias",
	"Zvi Mowshowitz",
	"Tyler Cowen",
	"Noah Smith",
	"Freddie deBoer",
	"Zeynep Tufekci",
	"Ezra Klein",
	"Agnes Callard",
	"Robin Hanson",
	"Dan Wang",
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.DBDriver); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	sources := repository.NewSourceRepository(db)
	users := repository.NewUserRepository(db)
	ideas := repository.NewIdeaRepository(db)
	reactions := repository.NewReactionRepository(db)

	for _, name := range sourceNames {
		err := sources.Create(ctx, &model.Source{Name: name})
		if err != nil && !errors.Is(err, repository.ErrDuplicateSource) {
			slog.Error("seeding source failed", "name", name, "error", err)
			os.Exit(1)
		}
	}

	seedUsers := []struct {
		email, username, password string
	}{
		{"user1@user1.com", "user1", "password1"},
		{"user2@user2.com", "user2", "password2"},
	}

	created := []*model.User{}
	for _, su := range seedUsers {
		hash, err := crypto.HashPassword(su.password, cfg.BcryptCost)
		if err != nil {
			slog.Error("hashing seed password failed", "error", err)
			os.Exit(1)
		}
		user := &model.User{Email: su.email, Username: su.username, PasswordHash: hash}
		err = users.Create(ctx, user)
		switch {
		case err == nil:
			created = append(created, user)
		case errors.Is(err, repository.ErrDuplicateEmail), errors.Is(err, repository.ErrDuplicateUsername):
			slog.Info("seed user already exists", "email", su.email)
		default:
			slog.Error("seeding user failed", "email", su.email, "error", err)
			os.Exit(1)
		}
	}

	if len(created) < 2 {
		slog.Info("seed users already present, skipping ideas and reactions")
		return
	}

	alexander, err := sources.GetByName(ctx, "Scott Alexander")
	if err != nil {
		slog.Error("looking up seed source failed", "error", err)
		os.Exit(1)
	}

	seedIdeas := []model.Idea{
		{
			URL:         "https://astralcodexten.substack.com/p/a-columbian-exchange",
			Description: "A fictional dialogue about the legitimacy of holidays",
			SourceID:    &alexander.ID,
			PosterID:    &created[0].ID,
		},
		{
			URL:         "https://example.org/cellular-automata",
			Description: "Cellular automata as a model of social consensus",
			PosterID:    &created[0].ID,
		},
		{
			URL:         "https://example.org/four-day-week",
			Description: "The four day work week is inevitable",
			PosterID:    &created[1].ID,
		},
	}

	for i := range seedIdeas {
		if err := ideas.Create(ctx, &seedIdeas[i]); err != nil {
			slog.Error("seeding idea failed", "url", seedIdeas[i].URL, "error", err)
			os.Exit(1)
		}
	}

	seedReactions := []model.Reaction{
		{UserID: created[0].ID, IdeaID: seedIdeas[2].ID, Kind: model.ReactionLikes, Agreement: 2},
		{UserID: created[1].ID, IdeaID: seedIdeas[0].ID, Kind: model.ReactionLikes, Agreement: -1},
		{UserID: created[1].ID, IdeaID: seedIdeas[1].ID, Kind: model.ReactionDislikes},
	}

	for i := range seedReactions {
		if err := reactions.Upsert(ctx, &seedReactions[i]); err != nil {
			slog.Error("seeding reaction failed", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("seed complete",
		"sources", len(sourceNames), "users", len(created),
		"ideas", len(seedIdeas), "reactions", len(seedReactions))
}
