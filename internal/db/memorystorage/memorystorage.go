// Package memorystorage provides a purely in-memory storage backend.
// It reuses the jsondb cache layout but never touches the filesystem,
// which makes it the default backend and the one used in tests.
package memorystorage

import (
	"github.com/patric-chuzhbe/songhub/internal/db/jsondb"
)

type MemoryStorage struct {
	*jsondb.JSONDB
}

func New() (*MemoryStorage, error) {
	return &MemoryStorage{
		JSONDB: &jsondb.JSONDB{
			Cache: jsondb.CacheStruct{},
		},
	}, nil
}

func (theStorage *MemoryStorage) Close() error {
	return nil
}
