// Package jsondb implements the storage interface on top of a single JSON
// file. The whole dataset lives in memory and is flushed to disk on Close.
package jsondb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/thoas/go-funk"

	"github.com/patric-chuzhbe/songhub/internal/db/storage"
	"github.com/patric-chuzhbe/songhub/internal/models"
	"github.com/patric-chuzhbe/songhub/internal/user"
)

// JSONDB is a file-backed storage. It keeps users and reviews as plain
// slices so listing preserves insertion order.
type JSONDB struct {
	fileName string
	mu       sync.RWMutex
	Cache    CacheStruct
}

// CacheStruct is the on-disk and in-memory layout of the database.
type CacheStruct struct {
	Users   []user.User
	Reviews []models.Review
}

func initDBFile(fileName string) error {
	dbFile, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(dbFile, `{
	"Users": [],
	"Reviews": []
}`)
	if err != nil {
		return err
	}
	return dbFile.Close()
}

func writeToJSONFile(fileName string, cache interface{}) error {
	jsonData, err := json.MarshalIndent(cache, "", "\t")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %s", err)
	}

	file, err2 := os.OpenFile(fileName, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err2 != nil {
		return fmt.Errorf("error opening file: %s", err2)
	}
	defer file.Close()

	_, err = file.Write(jsonData)
	if err != nil {
		return fmt.Errorf("error writing to file: %s", err)
	}

	return nil
}

func parseJSONFile(fileName string, cacheMap *CacheStruct) error {
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	err = decoder.Decode(cacheMap)
	if err != nil {
		return err
	}

	return nil
}

// New opens the JSON database file, creating an empty one when it does
// not exist yet.
func New(fileName string) (*JSONDB, error) {
	theDB := JSONDB{
		fileName: fileName,
		Cache:    CacheStruct{},
	}

	err := parseJSONFile(theDB.fileName, &theDB.Cache)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		err := initDBFile(fileName)
		if err != nil {
			return nil, err
		}
		err = parseJSONFile(theDB.fileName, &theDB.Cache)
		if err != nil {
			return nil, err
		}
	}

	return &theDB, nil
}

// CreateUser appends a new user. The userid must be unique.
func (db *JSONDB) CreateUser(ctx context.Context, usr *user.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	found := funk.Find(db.Cache.Users, func(existing user.User) bool {
		return existing.UserID == usr.UserID
	})
	if found != nil {
		return storage.ErrUserExists
	}

	db.Cache.Users = append(db.Cache.Users, *usr)

	return nil
}

// GetAllUsers returns every stored user in insertion order.
func (db *JSONDB) GetAllUsers(ctx context.Context) ([]user.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	result := make([]user.User, len(db.Cache.Users))
	copy(result, db.Cache.Users)

	return result, nil
}

// InsertReview appends a review. Any song name and user id are accepted.
func (db *JSONDB) InsertReview(ctx context.Context, review *models.Review) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.Cache.Reviews = append(db.Cache.Reviews, *review)

	return nil
}

// GetSongReviews returns the reviews for the given song in insertion order.
func (db *JSONDB) GetSongReviews(ctx context.Context, songName string) ([]models.Review, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var result []models.Review
	for _, review := range db.Cache.Reviews {
		if review.SongName == songName {
			result = append(result, review)
		}
	}

	return result, nil
}

// Ping always succeeds for the file-backed storage.
func (db *JSONDB) Ping(ctx context.Context) error {
	return nil
}

// Close flushes the cache to the database file.
func (db *JSONDB) Close() error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return writeToJSONFile(db.fileName, db.Cache)
}
