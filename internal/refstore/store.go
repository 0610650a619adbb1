package refstore

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"doc_auditor/internal/refs"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS records (
    id INTEGER PRIMARY KEY,
    title TEXT NOT NULL,
    authors TEXT,
    year TEXT,
    journal TEXT
);
`

// Store is a local catalog of known bibliographic records with a similarity
// lookup over titles. It implements refs.Store.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Add(ctx context.Context, r refs.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records(title, authors, year, journal) VALUES(?,?,?,?)`,
		r.Title, r.Authors, r.Year, r.Journal,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return count, nil
}

// Similar ranks stored records by token-set cosine similarity against the
// query title and returns the topK best non-zero matches.
func (s *Store) Similar(ctx context.Context, title string, topK int) ([]refs.Record, error) {
	queryTokens := titleTokens(title)
	if len(queryTokens) == 0 || topK <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT title, authors, year, journal FROM records`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	type scored struct {
		record refs.Record
		score  float64
	}
	var candidates []scored
	for rows.Next() {
		var r refs.Record
		if err := rows.Scan(&r.Title, &r.Authors, &r.Year, &r.Journal); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		score := cosine(queryTokens, titleTokens(r.Title))
		if score > 0 {
			candidates = append(candidates, scored{record: r, score: score})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	out := make([]refs.Record, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.record)
	}
	return out, nil
}

var titleWord = regexp.MustCompile(`[\p{L}\p{N}]+`)

func titleTokens(title string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, tok := range titleWord.FindAllString(strings.ToLower(title), -1) {
		out[tok] = struct{}{}
	}
	return out
}

func cosine(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	overlap := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			overlap++
		}
	}
	return float64(overlap) / math.Sqrt(float64(len(a))*float64(len(b)))
}
