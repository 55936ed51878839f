package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"talentdesk/pkg/platform/sentinel"
)

// Postgres stores documents as jsonb rows keyed by (collection, doc_id).
// One table serves every collection; the store stays schemaless the way the
// hosted document backend it replaces was.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT        NOT NULL,
	doc_id     TEXT        NOT NULL,
	data       JSONB       NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, doc_id)
);
`

// EnsureSchema creates the backing table when absent. Called once at startup.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("ensure documents schema: %w", err)
	}
	return nil
}

func (s *Postgres) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND doc_id = $2`,
		collection, id,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s/%s: %w", collection, id, err)
	}
	return decodeDoc(raw)
}

func (s *Postgres) List(ctx context.Context, collection string) ([]map[string]any, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM documents WHERE collection = $1 ORDER BY doc_id`,
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []map[string]any
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan document %s: %w", collection, err)
		}
		doc, err := decodeDoc(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents %s: %w", collection, err)
	}
	return docs, nil
}

func (s *Postgres) Create(ctx context.Context, collection, id string, doc map[string]any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document %s/%s: %w", collection, id, err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (collection, doc_id, data) VALUES ($1, $2, $3)`,
		collection, id, raw,
	)
	if isUniqueViolation(err) {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("create document %s/%s: %w", collection, id, err)
	}
	return nil
}

// Update applies a sparse patch as chained jsonb_set calls inside one
// transaction, so the batch lands atomically and untouched siblings survive.
func (s *Postgres) Update(ctx context.Context, collection, id string, patch Patch) error {
	if patch.Empty() {
		return nil
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update %s/%s: %w", collection, id, err)
	}
	defer tx.Rollback(ctx)

	for _, op := range patch.Ops() {
		value, err := json.Marshal(op.Value)
		if err != nil {
			return fmt.Errorf("encode patch value at %s: %w", op.Path, err)
		}
		parts := pathToArray(op.Path)
		// jsonb_set only creates the final key, so missing intermediate
		// objects have to be materialized first.
		for i := 1; i < len(parts); i++ {
			if _, err := tx.Exec(ctx,
				`UPDATE documents
				 SET data = jsonb_set(data, $3::text[], COALESCE(data #> $3::text[], '{}'::jsonb), true)
				 WHERE collection = $1 AND doc_id = $2`,
				collection, id, parts[:i],
			); err != nil {
				return fmt.Errorf("patch document %s/%s at %s: %w", collection, id, op.Path, err)
			}
		}
		tag, err := tx.Exec(ctx,
			`UPDATE documents
			 SET data = jsonb_set(data, $3::text[], $4::jsonb, true), updated_at = now()
			 WHERE collection = $1 AND doc_id = $2`,
			collection, id, parts, value,
		)
		if err != nil {
			return fmt.Errorf("patch document %s/%s at %s: %w", collection, id, op.Path, err)
		}
		if tag.RowsAffected() == 0 {
			return sentinel.ErrNotFound
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, collection, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND doc_id = $2`,
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("delete document %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) FindByField(ctx context.Context, collection, field, value string) ([]map[string]any, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND data->>$2 = $3`,
		collection, field, value,
	)
	if err != nil {
		return nil, fmt.Errorf("find documents %s by %s: %w", collection, field, err)
	}
	defer rows.Close()

	var docs []map[string]any
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan document %s: %w", collection, err)
		}
		doc, err := decodeDoc(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find documents %s by %s: %w", collection, field, err)
	}
	return docs, nil
}

func decodeDoc(raw []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

func pathToArray(path string) []string {
	return strings.Split(path, ".")
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
