// Package postgresdb provides the PostgreSQL-based implementation of the
// storage interface for persisting users and song reviews.
// Schema migrations are applied with goose on startup.
package postgresdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/patric-chuzhbe/songhub/internal/db/storage"
	"github.com/patric-chuzhbe/songhub/internal/models"
	"github.com/patric-chuzhbe/songhub/internal/user"
)

const uniqueViolationCode = "23505"

// PostgresDB is a PostgreSQL-backed storage.
type PostgresDB struct {
	database          *sql.DB
	connectionTimeout time.Duration
}

// New establishes a connection to the PostgreSQL database,
// runs schema migrations, and returns a configured PostgresDB instance.
func New(
	ctx context.Context,
	databaseDSN string,
	connectionTimeout time.Duration,
	migrationsDir string,
) (*PostgresDB, error) {
	database, err := sql.Open("pgx", databaseDSN)
	if err != nil {
		return nil, err
	}

	result := &PostgresDB{
		database:          database,
		connectionTimeout: connectionTimeout,
	}

	if err := result.Ping(ctx); err != nil {
		return nil,
			fmt.Errorf(
				"in internal/db/postgresdb/postgresdb.go/New(): error while `result.Ping()` calling: %w",
				err,
			)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return nil,
			fmt.Errorf(
				"in internal/db/postgresdb/postgresdb.go/New(): error while `goose.SetDialect()` calling: %w",
				err,
			)
	}

	if err := goose.Up(result.database, migrationsDir); err != nil {
		return nil,
			fmt.Errorf(
				"in internal/db/postgresdb/postgresdb.go/New(): error while `goose.Up()` calling: %w",
				err,
			)
	}

	return result, nil
}

// CreateUser inserts a new user row.
// A unique violation on userid maps to storage.ErrUserExists.
func (db *PostgresDB) CreateUser(ctx context.Context, usr *user.User) error {
	_, err := db.database.ExecContext(
		ctx,
		`INSERT INTO users (userid, password, role) VALUES ($1, $2, $3)`,
		usr.UserID,
		usr.Password,
		usr.Role,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return storage.ErrUserExists
		}
		return fmt.Errorf(
			"in internal/db/postgresdb/postgresdb.go/CreateUser(): error while `db.database.ExecContext()` calling: %w",
			err,
		)
	}

	return nil
}

// GetAllUsers returns every user row. Authentication scans this list.
func (db *PostgresDB) GetAllUsers(ctx context.Context) ([]user.User, error) {
	rows, err := db.database.QueryContext(
		ctx,
		`SELECT userid, password, role FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []user.User
	for rows.Next() {
		var usr user.User
		if err := rows.Scan(&usr.UserID, &usr.Password, &usr.Role); err != nil {
			return nil, err
		}
		result = append(result, usr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// InsertReview stores a review row.
func (db *PostgresDB) InsertReview(ctx context.Context, review *models.Review) error {
	_, err := db.database.ExecContext(
		ctx,
		`INSERT INTO reviews (song_name, user_id, review_text) VALUES ($1, $2, $3)`,
		review.SongName,
		review.UserID,
		review.ReviewText,
	)
	if err != nil {
		return fmt.Errorf(
			"in internal/db/postgresdb/postgresdb.go/InsertReview(): error while `db.database.ExecContext()` calling: %w",
			err,
		)
	}

	return nil
}

// GetSongReviews returns the reviews for a song ordered by insertion.
// The serial primary key carries the insertion order.
func (db *PostgresDB) GetSongReviews(ctx context.Context, songName string) ([]models.Review, error) {
	rows, err := db.database.QueryContext(
		ctx,
		`SELECT song_name, user_id, review_text FROM reviews WHERE song_name = $1 ORDER BY id`,
		songName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Review
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(&review.SongName, &review.UserID, &review.ReviewText); err != nil {
			return nil, err
		}
		result = append(result, review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Ping checks the database connection within the configured timeout.
func (db *PostgresDB) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, db.connectionTimeout)
	defer cancel()

	return db.database.PingContext(pingCtx)
}

// Close closes the underlying database connection.
func (db *PostgresDB) Close() error {
	return db.database.Close()
}
