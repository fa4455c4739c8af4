package store

import (
	"context"
	"fmt"

	"github.com/openmediawatch/backend/internal/util"
	"github.com/openmediawatch/backend/pkg/common"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
	Begin(ctx context.Context) (pgxv5.Tx, error)
}

// SourceRecord is a persisted news source. URL holds the homepage the
// source was registered with, which may be empty for sources discovered
// through citations.
type SourceRecord struct {
	Name   string
	URL    string
	Bias   string
	Active bool
}

// CitationStorage persists sources and citations so the in-memory network
// can be rebuilt after a restart.
type CitationStorage struct {
	conn pgxIConn
}

func NewCitationStorage(conn pgxIConn) *CitationStorage {
	return &CitationStorage{conn: conn}
}

// SaveSource upserts a source by name. An existing row keeps its original
// url and bias, matching the first-writer-wins behavior of the in-memory
// network.
func (s *CitationStorage) SaveSource(ctx context.Context, rec SourceRecord) error {
	_, err := s.conn.Exec(ctx, `
		INSERT INTO news_sources (name, url, political_bias, active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING`,
		util.SanitizePostgresText(rec.Name),
		util.SanitizePostgresText(rec.URL),
		rec.Bias,
		rec.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to save source %q: %w", rec.Name, err)
	}
	return nil
}

// ListSources returns all active sources ordered by name.
func (s *CitationStorage) ListSources(ctx context.Context) ([]SourceRecord, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT name, url, political_bias, active
		FROM news_sources
		WHERE active = TRUE
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer rows.Close()

	var out []SourceRecord
	for rows.Next() {
		var rec SourceRecord
		if err := rows.Scan(&rec.Name, &rec.URL, &rec.Bias, &rec.Active); err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read source rows: %w", err)
	}
	return out, nil
}

// SaveCitation inserts a citation row. The citation must already carry its
// public id.
func (s *CitationStorage) SaveCitation(ctx context.Context, c common.Citation) error {
	var articleID *int64
	if c.ArticleID != 0 {
		articleID = &c.ArticleID
	}
	_, err := s.conn.Exec(ctx, `
		INSERT INTO citations
			(public_id, from_source, to_source, from_article_id, to_url, context, citation_type, from_bias, to_bias)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (public_id) DO NOTHING`,
		c.ID,
		util.SanitizePostgresText(c.FromSource),
		util.SanitizePostgresText(c.ToSource),
		articleID,
		util.SanitizePostgresText(c.ToURL),
		util.SanitizePostgresText(c.Context),
		string(c.Kind),
		c.FromBias,
		c.ToBias,
	)
	if err != nil {
		return fmt.Errorf("failed to save citation %s: %w", c.ID, err)
	}
	return nil
}

// SaveCitations inserts a batch of citations in a single transaction.
func (s *CitationStorage) SaveCitations(ctx context.Context, cs []common.Citation) error {
	if len(cs) == 0 {
		return nil
	}
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batched := &CitationStorage{conn: tx}
	for _, c := range cs {
		if err := batched.SaveCitation(ctx, c); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit citations: %w", err)
	}
	return nil
}

// ListCitations returns all citations in insertion order.
func (s *CitationStorage) ListCitations(ctx context.Context) ([]common.Citation, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT public_id, from_source, to_source, from_article_id, to_url, context, citation_type, from_bias, to_bias
		FROM citations
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list citations: %w", err)
	}
	defer rows.Close()

	var out []common.Citation
	for rows.Next() {
		var (
			c         common.Citation
			articleID *int64
			kind      string
		)
		err := rows.Scan(&c.ID, &c.FromSource, &c.ToSource, &articleID, &c.ToURL, &c.Context, &kind, &c.FromBias, &c.ToBias)
		if err != nil {
			return nil, fmt.Errorf("failed to scan citation row: %w", err)
		}
		if articleID != nil {
			c.ArticleID = *articleID
		}
		c.Kind = common.CitationKind(kind)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read citation rows: %w", err)
	}
	return out, nil
}

// DeleteAll clears all persisted citations and sources. Used by the reset
// endpoint.
func (s *CitationStorage) DeleteAll(ctx context.Context) error {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM citations`); err != nil {
		return fmt.Errorf("failed to delete citations: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM news_sources`); err != nil {
		return fmt.Errorf("failed to delete sources: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}
	return nil
}
