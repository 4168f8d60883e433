package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideahub/ideahub-api/internal/model"
	"github.com/ideahub/ideahub-api/internal/repository"
)

func TestIdeaRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repository.NewIdeaRepository(db)

	poster := seedUser(t, db, "a@a.com", "alice")
	idea := &model.Idea{
		URL:         "https://example.org/holidays",
		Description: "A fictional dialogue about the legitimacy of holidays",
		PosterID:    &poster.ID,
	}
	require.NoError(t, repo.Create(ctx, idea))
	assert.NotEmpty(t, idea.ID)

	got, err := repo.GetByID(ctx, idea.ID)
	require.NoError(t, err)
	assert.Equal(t, idea.Description, got.Description)
	require.NotNil(t, got.PosterID)
	assert.Equal(t, poster.ID, *got.PosterID)
	assert.Nil(t, got.SourceID)
}

func TestIdeaRepository_GetMissing(t *testing.T) {
	repo := repository.NewIdeaRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), "bob")
	assert.ErrorIs(t, err, repository.ErrIdeaNotFound)
}

func TestIdeaRepository_GetDetails(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repository.NewIdeaRepository(db)

	alice := seedUser(t, db, "a@a.com", "alice")
	bob := seedUser(t, db, "b@b.com", "bob")
	idea := seedIdea(t, db, "cellular automata", &alice.ID)

	seedReaction(t, db, alice.ID, idea.ID, model.ReactionLikes, 2)
	seedReaction(t, db, bob.ID, idea.ID, model.ReactionDislikes, 0)

	plain, err := repo.GetDetails(ctx, idea.ID, false, "")
	require.NoError(t, err)
	assert.Nil(t, plain.AllReactions)
	assert.Nil(t, plain.UserReaction)

	details, err := repo.GetDetails(ctx, idea.ID, true, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, details.AllReactions)
	assert.Equal(t, int64(2), *details.AllReactions)
	require.NotNil(t, details.AllAgreement)
	assert.Equal(t, 2.0, *details.AllAgreement)
	require.NotNil(t, details.UserReaction)
	assert.Equal(t, model.ReactionDislikes, *details.UserReaction)

	// a user with no reaction gets null reaction fields
	carol := seedUser(t, db, "c@c.com", "carol")
	details, err = repo.GetDetails(ctx, idea.ID, true, carol.ID)
	require.NoError(t, err)
	assert.Nil(t, details.UserReaction)
	assert.Nil(t, details.UserAgreement)
}

func TestIdeaRepository_Search(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repository.NewIdeaRepository(db)

	seedIdea(t, db, "cellular automata and life", nil)
	seedIdea(t, db, "the four day work week", nil)

	ideas, err := repo.Search(ctx, "cellular")
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Contains(t, ideas[0].Description, "automata")

	none, err := repo.Search(ctx, "quantum")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestIdeaRepository_ListByPoster(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repository.NewIdeaRepository(db)

	alice := seedUser(t, db, "a@a.com", "alice")
	bob := seedUser(t, db, "b@b.com", "bob")
	seedIdea(t, db, "first", &alice.ID)
	seedIdea(t, db, "second", &alice.ID)
	seedIdea(t, db, "other", &bob.ID)

	ideas, err := repo.ListByPoster(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, ideas, 2)

	empty, err := repo.ListByPoster(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestIdeaRepository_ListUnseenIDs(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repository.NewIdeaRepository(db)

	alice := seedUser(t, db, "a@a.com", "alice")
	seen := seedIdea(t, db, "seen", nil)
	unseen := seedIdea(t, db, "unseen", nil)
	seedReaction(t, db, alice.ID, seen.ID, model.ReactionLikes, 1)

	ids, err := repo.ListUnseenIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{unseen.ID}, ids)

	seedReaction(t, db, alice.ID, unseen.ID, model.ReactionDislikes, 0)
	ids, err = repo.ListUnseenIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestIdeaRepository_ListUnseenRanked(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repository.NewIdeaRepository(db)

	alice := seedUser(t, db, "a@a.com", "alice")
	bob := seedUser(t, db, "b@b.com", "bob")
	carol := seedUser(t, db, "c@c.com", "carol")

	liked := seedIdea(t, db, "liked", nil)
	disliked := seedIdea(t, db, "disliked", nil)
	cold := seedIdea(t, db, "cold", nil)

	seedReaction(t, db, bob.ID, liked.ID, model.ReactionLikes, 3)
	seedReaction(t, db, carol.ID, liked.ID, model.ReactionLikes, -1)
	seedReaction(t, db, bob.ID, disliked.ID, model.ReactionDislikes, 0)

	ranked, err := repo.ListUnseenRanked(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	byID := map[string]model.RankedIdea{}
	for _, ri := range ranked {
		byID[ri.ID] = ri
	}

	// score sums agreement over LIKES edges only
	assert.Equal(t, 2.0, byID[liked.ID].Score)
	assert.Equal(t, int64(2), byID[liked.ID].Likes)
	assert.Equal(t, int64(0), byID[liked.ID].Dislikes)

	// dislikes are counted but contribute no scalar
	assert.Equal(t, 0.0, byID[disliked.ID].Score)
	assert.Equal(t, int64(1), byID[disliked.ID].Dislikes)

	assert.Equal(t, 0.0, byID[cold.ID].Score)

	// reacted ideas drop out of the candidate set
	seedReaction(t, db, alice.ID, liked.ID, model.ReactionLikes, 1)
	ranked, err = repo.ListUnseenRanked(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, ranked, 2)
	for _, ri := range ranked {
		assert.NotEqual(t, liked.ID, ri.ID)
	}
}

func TestIdeaRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repository.NewIdeaRepository(db)
	reactions := repository.NewReactionRepository(db)

	alice := seedUser(t, db, "a@a.com", "alice")
	bob := seedUser(t, db, "b@b.com", "bob")
	idea := seedIdea(t, db, "deletable", &alice.ID)
	seedReaction(t, db, bob.ID, idea.ID, model.ReactionLikes, 1)

	// only the poster can delete
	assert.ErrorIs(t, repo.Delete(ctx, idea.ID, bob.ID), repository.ErrNotIdeaOwner)

	require.NoError(t, repo.Delete(ctx, idea.ID, alice.ID))

	_, err := repo.GetByID(ctx, idea.ID)
	assert.ErrorIs(t, err, repository.ErrIdeaNotFound)

	// reaction edges go with the idea
	seen, err := reactions.ListSeen(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, seen)

	assert.ErrorIs(t, repo.Delete(ctx, idea.ID, alice.ID), repository.ErrIdeaNotFound)
}
