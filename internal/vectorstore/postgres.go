package vectorstore

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/docrouter/server/internal/loader"
	"codeberg.org/docrouter/server/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// shared connection pool for the per-source postgres stores
type DB struct {
	pool *pgxpool.Pool
}

// one logical store per source inside the segments table
type Postgres struct {
	pool   *pgxpool.Pool
	source string
}

func NewDB(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

func (db *DB) Close() {
	db.pool.Close()
}

// creates the vector extension and segments table when missing
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, query := range []string{createExtensionQuery, createTableQuery, createSourceIndexQuery} {
		if _, err := db.pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to prepare schema: %w", err)
		}
	}

	return nil
}

func (db *DB) Store(source string) *Postgres {
	return &Postgres{pool: db.pool, source: source}
}

func (db *DB) Factory() Factory {
	return func(_ context.Context, source string) (Store, error) {
		return db.Store(source), nil
	}
}

// returns the number of segments stored per source
func (db *DB) CountBySource(ctx context.Context) (map[string]int, error) {
	rows, err := db.pool.Query(ctx, countBySourceQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to count segments: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)

	for rows.Next() {
		var source string
		var count int

		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}

		counts[source] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return counts, nil
}

// deletes every segment of every source
func (db *DB) ClearAll(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, deleteAllSegmentsQuery); err != nil {
		return fmt.Errorf("failed to clear segments: %w", err)
	}

	return nil
}

// inserts segments in a single transaction
func (p *Postgres) Add(ctx context.Context, segments []loader.Segment, embeddings [][]float32) error {
	if err := checkLengths(len(segments), len(embeddings)); err != nil {
		return err
	}

	if len(segments) == 0 {
		return nil
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// defer rollback - will be no-op if commit succeeds
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("failed to rollback transaction", "error", err)
		}
	}()

	batch := &pgx.Batch{}

	for i, seg := range segments {
		metadata := seg.Metadata
		if metadata == nil {
			metadata = map[string]any{}
		}

		batch.Queue(insertSegmentQuery,
			p.source,
			seg.Text,
			metadata,
			pgvector.NewVector(embeddings[i]),
		)
	}

	br := tx.SendBatch(ctx, batch)

	for i := range len(segments) {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck,gosec // G104: error path cleanup
			return fmt.Errorf("failed to insert segment %d: %w", i, err)
		}
	}

	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (p *Postgres) Search(ctx context.Context, embedding []float32, maxResults int, minScore float64) ([]Match, error) {
	if maxResults <= 0 {
		return []Match{}, nil
	}

	rows, err := p.pool.Query(ctx, searchSegmentsQuery, pgvector.NewVector(embedding), p.source, minScore, maxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to search segments: %w", err)
	}
	defer rows.Close()

	var matches []Match

	for rows.Next() {
		var match Match

		if err := rows.Scan(&match.Segment.Text, &match.Segment.Metadata, &match.Score); err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}

		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return matches, nil
}

func (p *Postgres) Count(ctx context.Context) (int, error) {
	var count int

	if err := p.pool.QueryRow(ctx, countSegmentsQuery, p.source).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get segment count: %w", err)
	}

	return count, nil
}

func (p *Postgres) Clear(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, deleteSegmentsQuery, p.source); err != nil {
		return fmt.Errorf("failed to clear segments for %s: %w", p.source, err)
	}

	return nil
}
