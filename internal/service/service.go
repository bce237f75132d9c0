// Package service holds the business operations composed from the storage
// backend and the music catalog client.
package service

import (
	"context"

	dbstorage "github.com/patric-chuzhbe/songhub/internal/db/storage"
	"github.com/patric-chuzhbe/songhub/internal/models"
	"github.com/patric-chuzhbe/songhub/internal/user"
)

// ErrUserExists mirrors the storage sentinel for duplicate userids.
var ErrUserExists = dbstorage.ErrUserExists

type storage interface {
	CreateUser(ctx context.Context, usr *user.User) error
	GetAllUsers(ctx context.Context) ([]user.User, error)
	InsertReview(ctx context.Context, review *models.Review) error
	GetSongReviews(ctx context.Context, songName string) ([]models.Review, error)
	Ping(ctx context.Context) error
}

type catalogSearcher interface {
	Search(ctx context.Context, title string) (*models.CatalogSearchResponse, error)
}

// Service implements the application operations over storage and catalog.
type Service struct {
	db      storage
	catalog catalogSearcher
}

func New(db storage, catalog catalogSearcher) *Service {
	return &Service{
		db:      db,
		catalog: catalog,
	}
}

// RegisterUser creates a new user. Registration always produces a guest;
// there is no path that creates an admin.
func (s *Service) RegisterUser(ctx context.Context, userID, password string) error {
	return s.db.CreateUser(ctx, &user.User{
		UserID:   userID,
		Password: password,
		Role:     user.RoleGuest,
	})
}

// GetUsers lists every registered user.
func (s *Service) GetUsers(ctx context.Context) ([]user.User, error) {
	return s.db.GetAllUsers(ctx)
}

// SearchSongs proxies a title query to the music catalog.
func (s *Service) SearchSongs(ctx context.Context, title string) (*models.CatalogSearchResponse, error) {
	return s.catalog.Search(ctx, title)
}

// GetSongReviews returns the reviews for a song in insertion order.
func (s *Service) GetSongReviews(ctx context.Context, songName string) ([]models.Review, error) {
	return s.db.GetSongReviews(ctx, songName)
}

// SubmitReview stores a review. The song name and user id are taken as-is;
// neither is checked against the catalog or the user table.
func (s *Service) SubmitReview(ctx context.Context, songName, userID, reviewText string) error {
	return s.db.InsertReview(ctx, &models.Review{
		SongName:   songName,
		UserID:     userID,
		ReviewText: reviewText,
	})
}

// Ping checks the health of the storage layer.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
