package postgres

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"

	"github.com/openscout/frc-sync/internal/domain/etag"
	qb "github.com/openscout/frc-sync/internal/platform/querybuilder"
)

var templatePlaceholderRegex = regexp.MustCompile(`\{[a-z_]+\}`)

type EtagRepository struct {
	db *sqlx.DB
}

func NewEtagRepository(db *sqlx.DB) *EtagRepository {
	return &EtagRepository{db: db}
}

func (r *EtagRepository) Get(ctx context.Context, endpoint string) (string, bool, error) {
	query, args, err := qb.Select("etag").From("etags").
		Where(qb.Eq("endpoint", endpoint)).
		ToSQL()
	if err != nil {
		return "", false, fmt.Errorf("build select etag query: %w", err)
	}

	var value string
	if err := r.db.GetContext(ctx, &value, query, args...); err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select etag endpoint=%s: %w", endpoint, err)
	}
	return value, true, nil
}

// GetBulk loads every record whose endpoint matches one template in a
// single LIKE round trip, substituting each placeholder with a wildcard.
func (r *EtagRepository) GetBulk(ctx context.Context, template string) (map[string]string, error) {
	pattern := templatePlaceholderRegex.ReplaceAllString(template, "%")

	query, args, err := qb.Select("endpoint", "etag").From("etags").
		Where(qb.Expr("endpoint LIKE ?", pattern)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build bulk select etags query: %w", err)
	}

	var rows []etagRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("bulk select etags template=%s: %w", template, err)
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Endpoint] = row.ETag
	}
	return out, nil
}

func (r *EtagRepository) UpsertMany(ctx context.Context, records []etag.Record) error {
	rows := make([]etagRowModel, 0, len(records))
	for _, record := range records {
		rows = append(rows, etagRowModel{
			Endpoint: record.Endpoint,
			ETag:     record.ETag,
		})
	}
	return upsertMany(ctx, r.db, "etags", []string{"endpoint"}, rows)
}

type etagRowModel struct {
	Endpoint string `db:"endpoint"`
	ETag     string `db:"etag"`
}
