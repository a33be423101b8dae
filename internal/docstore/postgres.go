package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores every collection in one JSONB table (see db.EnsureSchema).
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) All(ctx context.Context, collection string) ([]Document, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, data
		 FROM documents
		 WHERE collection = $1
		 ORDER BY created_at, id`,
		collection,
	)
	if err != nil {
		return nil, err
	}
	return scanDocuments(rows)
}

func (p *Postgres) Get(ctx context.Context, collection, id string) (Document, error) {
	var raw []byte

	err := p.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}

	return decodeDocument(id, raw)
}

func (p *Postgres) Where(ctx context.Context, collection, field string, value any) ([]Document, error) {
	filter, err := json.Marshal(map[string]any{field: value})
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}

	rows, err := p.pool.Query(ctx,
		`SELECT id, data
		 FROM documents
		 WHERE collection = $1 AND data @> $2::jsonb
		 ORDER BY created_at, id`,
		collection, filter,
	)
	if err != nil {
		return nil, err
	}
	return scanDocuments(rows)
}

func (p *Postgres) Insert(ctx context.Context, collection string, data map[string]any) (Document, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Document{}, fmt.Errorf("encode document: %w", err)
	}

	id := uuid.NewString()

	_, err = p.pool.Exec(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)`,
		collection, id, raw,
	)
	if err != nil {
		return Document{}, err
	}

	// round-trip so callers see the same shapes a later Get returns
	return decodeDocument(id, raw)
}

func (p *Postgres) Merge(ctx context.Context, collection, id string, data map[string]any) (Document, error) {
	patch, err := json.Marshal(data)
	if err != nil {
		return Document{}, fmt.Errorf("encode patch: %w", err)
	}

	var raw []byte
	err = p.pool.QueryRow(ctx,
		`UPDATE documents
		 SET data = data || $3::jsonb, updated_at = now()
		 WHERE collection = $1 AND id = $2
		 RETURNING data`,
		collection, id, patch,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}

	return decodeDocument(id, raw)
}

func (p *Postgres) Delete(ctx context.Context, collection, id string) (Document, error) {
	var raw []byte

	err := p.pool.QueryRow(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2 RETURNING data`,
		collection, id,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}

	return decodeDocument(id, raw)
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func scanDocuments(rows pgx.Rows) ([]Document, error) {
	defer rows.Close()

	out := make([]Document, 0)
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}

		doc, err := decodeDocument(id, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}

	return out, rows.Err()
}

func decodeDocument(id string, raw []byte) (Document, error) {
	data := make(map[string]any)
	if err := json.Unmarshal(raw, &data); err != nil {
		return Document{}, fmt.Errorf("decode document %s: %w", id, err)
	}
	return Document{ID: id, Data: data}, nil
}
