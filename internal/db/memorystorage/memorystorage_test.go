package memorystorage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patric-chuzhbe/songhub/internal/models"
	"github.com/patric-chuzhbe/songhub/internal/user"
)

func Test(t *testing.T) {
	t.Run("The base memorystorage package test", func(t *testing.T) {
		theStorage, err := New()
		assert.NoError(t, err, "The memorystorage.New() should not return error")

		ctx := context.Background()

		err = theStorage.CreateUser(ctx, &user.User{UserID: "some user", Password: "some password", Role: user.RoleGuest})
		assert.NoError(t, err, "The `theStorage.CreateUser()` should not return error")

		users, err := theStorage.GetAllUsers(ctx)
		assert.NoError(t, err)
		assert.Len(t, users, 1)

		err = theStorage.InsertReview(ctx, &models.Review{SongName: "some song", UserID: "some user", ReviewText: "some text"})
		assert.NoError(t, err)

		reviews, err := theStorage.GetSongReviews(ctx, "some song")
		assert.NoError(t, err)
		assert.Len(t, reviews, 1)

		assert.NoError(t, theStorage.Ping(ctx))
		assert.NoError(t, theStorage.Close())
	})
}
