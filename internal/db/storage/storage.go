// Package storage declares the interface implemented by every storage
// backend (postgres, JSON file, in-memory) and the sentinel errors the
// backends report.
package storage

import (
	"context"
	"errors"

	"github.com/patric-chuzhbe/songhub/internal/models"
	"github.com/patric-chuzhbe/songhub/internal/user"
)

// ErrUserExists is returned by CreateUser when the userid is already taken.
var ErrUserExists = errors.New("a user with this userid already exists")

// Storage is the full contract of a storage backend.
// Consumers declare narrower interfaces with the subset they need.
type Storage interface {
	CreateUser(ctx context.Context, usr *user.User) error

	GetAllUsers(ctx context.Context) ([]user.User, error)

	InsertReview(ctx context.Context, review *models.Review) error

	// GetSongReviews returns the reviews for a song in insertion order.
	GetSongReviews(ctx context.Context, songName string) ([]models.Review, error)

	Ping(ctx context.Context) error

	Close() error
}
