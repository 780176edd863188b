package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lib/pq"

	"github.com/Siddarth2230/base62/internal/models"
	"github.com/Siddarth2230/base62/pkg/metrics"
)

var (
	ErrDuplicateCode = errors.New("code already issued")
	ErrNoRecord      = errors.New("no record found")
)

const schema = `
CREATE TABLE IF NOT EXISTS issued_ids (
    id         BIGSERIAL PRIMARY KEY,
    code       TEXT        NOT NULL UNIQUE,
    value      NUMERIC     NOT NULL,
    generator  TEXT        NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// IDRepository is the Postgres ledger of issued codes.
type IDRepository struct {
	db     *sql.DB
	logger *log.Logger
}

func NewIDRepository(db *sql.DB, logger *log.Logger) *IDRepository {
	return &IDRepository{db: db, logger: logger}
}

func observe(op string, start time.Time) {
	metrics.DatabaseQueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// EnsureSchema creates the issued_ids table if it does not exist yet.
func (r *IDRepository) EnsureSchema(ctx context.Context) error {
	defer observe("schema", time.Now())
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create issued_ids: %w", err)
	}
	return nil
}

// Save inserts rec and fills in its ID and CreatedAt.
// A code that is already present yields ErrDuplicateCode.
func (r *IDRepository) Save(ctx context.Context, rec *models.IssuedID) error {
	defer observe("save", time.Now())
	query := `
        INSERT INTO issued_ids (code, value, generator)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	row := r.db.QueryRowContext(ctx, query, rec.Code, rec.Value, rec.Generator)
	if err := row.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCode
		}
		r.logger.Error("saving issued id", "code", rec.Code, "err", err)
		return err
	}
	return nil
}

// FindByCode returns nil, nil when code was never issued.
func (r *IDRepository) FindByCode(ctx context.Context, code string) (*models.IssuedID, error) {
	defer observe("find", time.Now())
	query := `
        SELECT id, code, value::text, generator, created_at
        FROM issued_ids
        WHERE code = $1
	`
	var rec models.IssuedID
	row := r.db.QueryRowContext(ctx, query, code)
	if err := row.Scan(&rec.ID, &rec.Code, &rec.Value, &rec.Generator, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Debug("no issued id", "code", code)
			return nil, nil
		}
		r.logger.Error("finding issued id", "code", code, "err", err)
		return nil, err
	}
	return &rec, nil
}

func (r *IDRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	defer observe("exists", time.Now())
	query := `SELECT EXISTS(SELECT 1 FROM issued_ids WHERE code = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, code).Scan(&exists); err != nil {
		r.logger.Error("checking issued id", "code", code, "err", err)
		return false, err
	}
	return exists, nil
}

// DeleteByCode removes code from the ledger. ErrNoRecord if it was absent.
func (r *IDRepository) DeleteByCode(ctx context.Context, code string) error {
	defer observe("delete", time.Now())
	result, err := r.db.ExecContext(ctx, `DELETE FROM issued_ids WHERE code = $1`, code)
	if err != nil {
		r.logger.Error("deleting issued id", "code", code, "err", err)
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w for code %s", ErrNoRecord, code)
	}

	r.logger.Info("deleted issued id", "code", code)
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
