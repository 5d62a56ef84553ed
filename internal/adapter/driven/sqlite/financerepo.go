package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/marketpro/backoffice/internal/domain/model"
	"github.com/marketpro/backoffice/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.FinanceStore = (*FinanceRepo)(nil)

const financeColumns = `id, user_id, marketplace, kind, amount, description, occurred_at, created_at`

// FinanceRepo is the SQLite implementation of the FinanceStore port interface.
type FinanceRepo struct {
	db  *DB
	now func() time.Time
}

// NewFinanceRepo creates a new FinanceRepo backed by the given DB.
func NewFinanceRepo(db *DB) *FinanceRepo {
	return &FinanceRepo{db: db, now: time.Now}
}

// Create inserts a new finance record. A zero OccurredAt defaults to now.
func (r *FinanceRepo) Create(ctx context.Context, rec model.FinanceRecord) (model.FinanceRecord, error) {
	const query = `INSERT INTO finance_records (user_id, marketplace, kind, amount, description, occurred_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	rec.CreatedAt = r.now().UTC()
	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = rec.CreatedAt
	}

	result, err := r.db.Writer.ExecContext(ctx, query,
		rec.UserID, string(rec.Marketplace), string(rec.Kind), rec.Amount.String(), rec.Description,
		formatTime(rec.OccurredAt), formatTime(rec.CreatedAt),
	)
	if err != nil {
		return model.FinanceRecord{}, fmt.Errorf("create finance record: %w", err)
	}

	rec.ID, err = result.LastInsertId()
	if err != nil {
		return model.FinanceRecord{}, fmt.Errorf("last insert id: %w", err)
	}
	return rec, nil
}

// Get returns the finance record with the given ID owned by userID.
func (r *FinanceRepo) Get(ctx context.Context, userID, id int64) (model.FinanceRecord, error) {
	query := `SELECT ` + financeColumns + ` FROM finance_records WHERE user_id = ? AND id = ?`
	rec, err := scanFinanceRecord(r.db.Reader.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		return model.FinanceRecord{}, notFound(err, "finance record", id)
	}
	return rec, nil
}

// List returns the user's finance records matching filter, newest first.
func (r *FinanceRepo) List(ctx context.Context, userID int64, filter model.FinanceFilter) ([]model.FinanceRecord, error) {
	conds := []string{"user_id = ?"}
	args := []any{userID}
	if filter.Marketplace != "" {
		conds = append(conds, "marketplace = ?")
		args = append(args, string(filter.Marketplace))
	}
	if filter.Kind != "" {
		conds = append(conds, "kind = ?")
		args = append(args, string(filter.Kind))
	}
	if !filter.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, formatTime(filter.From))
	}
	if !filter.To.IsZero() {
		conds = append(conds, "occurred_at < ?")
		args = append(args, formatTime(filter.To))
	}

	query := `SELECT ` + financeColumns + ` FROM finance_records WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY occurred_at DESC, id DESC`

	rows, err := r.db.Reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list finance records: %w", err)
	}
	defer rows.Close()

	records := []model.FinanceRecord{}
	for rows.Next() {
		rec, err := scanFinanceRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan finance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate finance records: %w", err)
	}

	return records, nil
}

// Update replaces the mutable fields of an existing finance record.
func (r *FinanceRepo) Update(ctx context.Context, rec model.FinanceRecord) (model.FinanceRecord, error) {
	const query = `UPDATE finance_records SET marketplace = ?, kind = ?, amount = ?, description = ?, occurred_at = ?
		WHERE user_id = ? AND id = ?`

	existing, err := r.Get(ctx, rec.UserID, rec.ID)
	if err != nil {
		return model.FinanceRecord{}, err
	}
	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = existing.OccurredAt
	}
	rec.CreatedAt = existing.CreatedAt

	result, err := r.db.Writer.ExecContext(ctx, query,
		string(rec.Marketplace), string(rec.Kind), rec.Amount.String(), rec.Description, formatTime(rec.OccurredAt),
		rec.UserID, rec.ID,
	)
	if err != nil {
		return model.FinanceRecord{}, fmt.Errorf("update finance record %d: %w", rec.ID, err)
	}
	if err := requireAffected(result, "finance record", rec.ID); err != nil {
		return model.FinanceRecord{}, err
	}
	return rec, nil
}

// Delete removes the finance record with the given ID owned by userID.
func (r *FinanceRepo) Delete(ctx context.Context, userID, id int64) error {
	const query = `DELETE FROM finance_records WHERE user_id = ? AND id = ?`
	result, err := r.db.Writer.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("delete finance record %d: %w", id, err)
	}
	return requireAffected(result, "finance record", id)
}

func scanFinanceRecord(row rowScanner) (model.FinanceRecord, error) {
	var rec model.FinanceRecord
	var marketplace, kind, amount, occurredAt, createdAt string
	if err := row.Scan(&rec.ID, &rec.UserID, &marketplace, &kind, &amount, &rec.Description,
		&occurredAt, &createdAt); err != nil {
		return model.FinanceRecord{}, err
	}
	rec.Marketplace = model.Marketplace(marketplace)
	rec.Kind = model.FinanceKind(kind)

	var err error
	if rec.Amount, err = parseDecimal(amount); err != nil {
		return model.FinanceRecord{}, err
	}
	if rec.OccurredAt, err = parseTime(occurredAt); err != nil {
		return model.FinanceRecord{}, fmt.Errorf("parse occurred_at: %w", err)
	}
	if rec.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.FinanceRecord{}, fmt.Errorf("parse created_at: %w", err)
	}
	return rec, nil
}
