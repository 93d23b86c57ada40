package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/domain"
)

// Repo implements domain.CatalogProvider on the application's MySQL. The
// pipeline reads a catalog snapshot at batch start and writes unmatched raw
// names for alias curation; it never mutates properties.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// EnsureSchema creates the tables this adapter needs. Harmless when they
// already exist; the CLI calls it at startup.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	for _, stmt := range splitStatements(schemaDDL) {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) LoadCatalog(ctx context.Context) ([]domain.Property, error) {
	rows, err := r.db.QueryContext(ctx, selectCatalogSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Property
	for rows.Next() {
		var p domain.Property
		var aliasesJSON sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &aliasesJSON); err != nil {
			return nil, err
		}
		if aliasesJSON.Valid && aliasesJSON.String != "" {
			if err := json.Unmarshal([]byte(aliasesJSON.String), &p.Aliases); err != nil {
				// a broken alias list should not sink the whole catalog
				log.Warn().Int64("property", p.ID).Err(err).Msg("unreadable aliases column")
				p.Aliases = nil
			}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) RecordUnmatched(ctx context.Context, raw string, bestScore int, suggestion string) error {
	_, err := r.db.ExecContext(ctx, upsertUnmatchedSQL, raw, bestScore, suggestion)
	return err
}

func splitStatements(ddl string) []string {
	var out []string
	for _, stmt := range strings.Split(ddl, ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out
}
