package tokenstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/healthsurv/internal/client/migrations"
	"github.com/dmitrijs2005/healthsurv/internal/client/models"
	"github.com/dmitrijs2005/healthsurv/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/healthsurv/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the pair in the metadata table of the client database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at dsn and applies migrations.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", dsn, err)
	}
	// one writer; also keeps ":memory:" databases on a single connection
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite %q: %w", dsn, err)
	}
	return NewSQLiteStore(db), nil
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context) (models.Credentials, error) {
	values, err := metadata.NewSQLiteRepository(s.db).GetMany(ctx, AccessTokenKey, RefreshTokenKey)
	if err != nil {
		return models.Credentials{}, err
	}
	return models.Credentials{
		AccessToken:  string(values[AccessTokenKey]),
		RefreshToken: string(values[RefreshTokenKey]),
	}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, c models.Credentials) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := setOrDelete(ctx, repo, AccessTokenKey, c.AccessToken); err != nil {
			return err
		}
		return setOrDelete(ctx, repo, RefreshTokenKey, c.RefreshToken)
	})
}

func (s *SQLiteStore) SaveAccess(ctx context.Context, access string) error {
	return setOrDelete(ctx, metadata.NewSQLiteRepository(s.db), AccessTokenKey, access)
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, AccessTokenKey, RefreshTokenKey)
	})
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func setOrDelete(ctx context.Context, repo metadata.Repository, key, value string) error {
	if value == "" {
		return repo.Delete(ctx, key)
	}
	return repo.Set(ctx, key, []byte(value))
}
