package jsondb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/songhub/internal/db/storage"
	"github.com/patric-chuzhbe/songhub/internal/models"
	"github.com/patric-chuzhbe/songhub/internal/user"
)

func TestUsers(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "db_test.json")

	db, err := New(fileName)
	require.NoError(t, err)
	require.NotNil(t, db)

	ctx := context.Background()

	err = db.CreateUser(ctx, &user.User{UserID: "ahmed", Password: "secret", Role: user.RoleAdmin})
	require.NoError(t, err)

	err = db.CreateUser(ctx, &user.User{UserID: "ahmed", Password: "another", Role: user.RoleGuest})
	assert.ErrorIs(t, err, storage.ErrUserExists)

	err = db.CreateUser(ctx, &user.User{UserID: "guest", Password: "secret2", Role: user.RoleGuest})
	require.NoError(t, err)

	users, err := db.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "ahmed", users[0].UserID)
	assert.Equal(t, user.RoleAdmin, users[0].Role)
	assert.Equal(t, "guest", users[1].UserID)
}

func TestReviewsKeepInsertionOrder(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "db_test.json")

	db, err := New(fileName)
	require.NoError(t, err)

	ctx := context.Background()

	err = db.InsertReview(ctx, &models.Review{SongName: "Yesterday", UserID: "u1", ReviewText: "great"})
	require.NoError(t, err)
	err = db.InsertReview(ctx, &models.Review{SongName: "Yesterday", UserID: "u2", ReviewText: "meh"})
	require.NoError(t, err)
	err = db.InsertReview(ctx, &models.Review{SongName: "Let It Be", UserID: "u1", ReviewText: "classic"})
	require.NoError(t, err)

	reviews, err := db.GetSongReviews(ctx, "Yesterday")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "u1", reviews[0].UserID)
	assert.Equal(t, "u2", reviews[1].UserID)

	reviews, err = db.GetSongReviews(ctx, "Unknown")
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestCloseAndReopenPersistsData(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "db_test.json")

	db, err := New(fileName)
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, db.CreateUser(ctx, &user.User{UserID: "ahmed", Password: "secret", Role: user.RoleAdmin}))
	require.NoError(t, db.InsertReview(ctx, &models.Review{SongName: "Yesterday", UserID: "u1", ReviewText: "great"}))
	require.NoError(t, db.Close())

	reopened, err := New(fileName)
	require.NoError(t, err)

	users, err := reopened.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	reviews, err := reopened.GetSongReviews(ctx, "Yesterday")
	require.NoError(t, err)
	assert.Len(t, reviews, 1)

	_, err = os.Stat(fileName)
	assert.NoError(t, err)
}
