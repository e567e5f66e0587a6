package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"feedbox/internal/models"
	"feedbox/internal/repositories"
	"feedbox/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db := testutil.SetupTestDatabase(t)
	repo := repositories.NewGORMUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "Elphaba", Email: "elphaba@oz.test"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleUser, user.Role)

	byEmail, err := repo.GetByEmail(ctx, "elphaba@oz.test")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByUsername(ctx, "Glinda")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = repo.Create(ctx, &models.User{Username: "Elphaba", Email: "other@oz.test"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	user.Username = "Elphie"
	require.NoError(t, repo.Update(ctx, user))
	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Elphie", got.Username)

	assert.ErrorIs(t, repo.Update(ctx, &models.User{ID: 999, Username: "x", Email: "x@oz.test"}), repositories.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, user.ID))
	assert.ErrorIs(t, repo.Delete(ctx, user.ID), repositories.ErrNotFound)
}

func TestFeedbackRepository(t *testing.T) {
	db := testutil.SetupTestDatabase(t)
	users := repositories.NewGORMUserRepository(db)
	repo := repositories.NewGORMFeedbackRepository(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "Elphaba", "elphaba@oz.test", models.RoleUser)
	posted := time.Now().UTC()
	fb := &models.Feedback{Rating: 9, Feedback: "Needs more green.", UserID: author.ID, DatePosted: posted}
	require.NoError(t, repo.Create(ctx, fb))
	assert.Equal(t, "Elphaba", fb.Author.Username)

	n, err := users.CountFeedbacks(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	found, err := repo.FindByID(ctx, fb.ID)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Elphaba", found[0].Author.Username)

	none, err := repo.FindByID(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, none)

	// DatePosted is create-only: an update must not move it.
	fb.Rating = 0
	fb.DatePosted = posted.Add(48 * time.Hour)
	require.NoError(t, repo.Update(ctx, fb))
	assert.Equal(t, 0, fb.Rating)
	assert.True(t, posted.Equal(fb.DatePosted))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, fb.ID))
	_, err = repo.GetByID(ctx, fb.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestStoreTransactionRollsBack(t *testing.T) {
	db := testutil.SetupTestDatabase(t)
	store := repositories.NewGORMStore(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Transaction(ctx, func(tx repositories.Store) error {
		if err := tx.Users().Create(ctx, &models.User{Username: "Boq", Email: "boq@oz.test"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = store.Users().GetByEmail(ctx, "boq@oz.test")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
