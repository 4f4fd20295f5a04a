package corpus

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LoadPostgres reads a pre-seeded corpus_records table into an immutable
// store. The table is read once at startup; the pool is not retained.
func LoadPostgres(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	rows, err := pool.Query(
		ctx,
		`SELECT query_text, response_text, COALESCE(emotion_tag, ''), source_id
		 FROM corpus_records`,
	)
	if err != nil {
		return nil, fmt.Errorf("query corpus_records: %w", err)
	}
	defer rows.Close()

	var emotion, support []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Query, &r.Response, &r.EmotionTag, &r.SourceID); err != nil {
			return nil, fmt.Errorf("scan corpus record: %w", err)
		}
		r.Query = strings.TrimSpace(r.Query)
		r.Response = strings.TrimSpace(r.Response)
		if r.Query == "" || r.Response == "" {
			continue
		}
		switch r.SourceID {
		case SourceEmotion:
			emotion = append(emotion, r)
		default:
			r.SourceID = SourceSupport
			support = append(support, r)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read corpus_records: %w", err)
	}
	return NewStore(emotion, support), nil
}
