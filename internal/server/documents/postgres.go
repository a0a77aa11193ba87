package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/poetrykeeper/internal/common"
	"github.com/dmitrijs2005/poetrykeeper/internal/dbx"
	"github.com/dmitrijs2005/poetrykeeper/internal/server/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepository stores documents in the "documents" table.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// OpenPostgres opens a pgx-backed *sql.DB and applies the embedded migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return NewPostgresRepository(db), nil
}

var gooseUpContext = goose.UpContext

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *PostgresRepository) List(ctx context.Context, collection string) (map[string][]byte, error) {
	return listChildren(ctx, r.db, collection)
}

func listChildren(ctx context.Context, db dbx.DBTX, collection string) (map[string][]byte, error) {
	query := `SELECT key, value FROM documents WHERE collection = $1 ORDER BY key`

	rows, err := db.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]byte)
	for rows.Next() {
		var (
			key   string
			value []byte
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, collection, key string) ([]byte, error) {
	query := `SELECT value FROM documents WHERE collection = $1 AND key = $2`

	var value []byte
	err := r.db.QueryRowContext(ctx, query, collection, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return value, nil
}

const upsertQuery = `INSERT INTO documents (collection, key, value, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (collection, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

func (r *PostgresRepository) Put(ctx context.Context, collection, key string, value []byte) error {
	if _, err := r.db.ExecContext(ctx, upsertQuery, collection, key, value); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, collection, key string) error {
	query := `DELETE FROM documents WHERE collection = $1 AND key = $2`

	if _, err := r.db.ExecContext(ctx, query, collection, key); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteCollection(ctx context.Context, collection string) error {
	return deleteCollection(ctx, r.db, collection)
}

func deleteCollection(ctx context.Context, db dbx.DBTX, collection string) error {
	query := `DELETE FROM documents WHERE collection = $1`

	if _, err := db.ExecContext(ctx, query, collection); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ReplaceCollection(ctx context.Context, collection string, children map[string][]byte) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := deleteCollection(ctx, tx, collection); err != nil {
			return err
		}
		for _, key := range sortedKeys(children) {
			if _, err := tx.ExecContext(ctx, upsertQuery, collection, key, children[key]); err != nil {
				return fmt.Errorf("error performing sql request: %w", err)
			}
		}
		return nil
	})
}
