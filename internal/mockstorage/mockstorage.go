// Package mockstorage provides a testify-based mock implementation
// of the storage interface used by the service and router packages.
// It is used for unit testing handlers by simulating storage behavior.
package mockstorage

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/patric-chuzhbe/songhub/internal/models"
	"github.com/patric-chuzhbe/songhub/internal/user"
)

// StorageMock is a testify mock that implements the storage interface.
type StorageMock struct {
	mock.Mock
}

// CreateUser mocks inserting a new user.
func (m *StorageMock) CreateUser(ctx context.Context, usr *user.User) error {
	args := m.Called(ctx, usr)
	return args.Error(0)
}

// GetAllUsers mocks listing every user.
func (m *StorageMock) GetAllUsers(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]user.User)
	return users, args.Error(1)
}

// InsertReview mocks storing a review.
func (m *StorageMock) InsertReview(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

// GetSongReviews mocks listing the reviews of a song.
func (m *StorageMock) GetSongReviews(ctx context.Context, songName string) ([]models.Review, error) {
	args := m.Called(ctx, songName)
	reviews, _ := args.Get(0).([]models.Review)
	return reviews, args.Error(1)
}

// Ping mocks the storage health check.
func (m *StorageMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close mocks releasing the storage resources.
func (m *StorageMock) Close() error {
	args := m.Called()
	return args.Error(0)
}
