// Package db opens the optional Postgres pool used as an alternative corpus
// source. The rest of the service never touches the database after startup.
package db

import (
	"context"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ormOnlyQueryKeys are connection-string parameters written by ORMs and
// migration tools that libpq-style parsers reject.
var ormOnlyQueryKeys = map[string]struct{}{
	"schema":           {},
	"connection_limit": {},
	"pool_timeout":     {},
	"pgbouncer":        {},
}

// Connect opens and pings a pool for the given URL. Callers treat any error
// as "corpus source unavailable" and degrade to an empty corpus.
func Connect(ctx context.Context, rawURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(normalizeURL(rawURL))
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// normalizeURL maps the postgresql scheme spellings other tools emit onto
// plain postgres and strips ORM-only query parameters.
func normalizeURL(rawURL string) string {
	normalized := strings.TrimSpace(rawURL)
	for _, prefix := range []string{"postgresql+psycopg://", "postgresql://"} {
		if strings.HasPrefix(normalized, prefix) {
			normalized = "postgres://" + strings.TrimPrefix(normalized, prefix)
			break
		}
	}

	parsed, err := url.Parse(normalized)
	if err != nil || parsed.Scheme != "postgres" {
		return normalized
	}

	query := parsed.Query()
	for key := range query {
		if _, ok := ormOnlyQueryKeys[key]; ok {
			query.Del(key)
		}
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}
