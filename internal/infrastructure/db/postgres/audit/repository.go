package audit

import (
	"context"
	"fmt"

	domain "hospital-admin-api/internal/domain/audit"
	"hospital-admin-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DBTX
}

func NewRepository(db postgres.DBTX) domain.Repository {
	return &Repository{db: db}
}

// AppendEntry must run inside a transaction: the advisory lock it takes is
// held until commit, which keeps id and created_at in the same order.
func (r *Repository) AppendEntry(ctx context.Context, req domain.Entry) (*domain.Entry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := r.db.Exec(ctx, LockAppend, appendLockKey); err != nil {
		return nil, fmt.Errorf("lock audit trail: %w", err)
	}

	e := Entry{
		ActionCode:  string(req.ActionCode),
		Description: req.Description,
		AdminID:     req.AdminID,
		AdminName:   req.AdminName,
		TargetID:    targetID(req),
	}
	role := string(req.TargetRole)
	if role != "" {
		e.TargetRole = &role
	}

	if err := r.db.QueryRow(ctx, InsertEntry,
		e.ActionCode, e.Description, e.AdminID, e.AdminName, e.TargetID, role,
	).Scan(&e.ID, &e.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert audit entry: %w", err)
	}

	return fromDBModel(&e)
}

func (r *Repository) ListEntries(ctx context.Context, f domain.Filter) (domain.Entries, error) {
	var targetID *string
	if f.TargetID != nil {
		s := f.TargetID.String()
		targetID = &s
	}

	rows, err := r.db.Query(ctx, SelectEntries, string(f.ActionCode), targetID, f.From, f.To, f.NormalizedLimit())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var es Entries
	for rows.Next() {
		e := new(Entry)
		if err = rows.Scan(
			&e.ID,
			&e.ActionCode,
			&e.Description,
			&e.AdminID,
			&e.AdminName,
			&e.TargetID,
			&e.TargetRole,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}

		es = append(es, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(es)
}

func (r *Repository) CountByAction(ctx context.Context) (map[domain.ActionCode]int, error) {
	rows, err := r.db.Query(ctx, CountEntriesByAction)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[domain.ActionCode]int)
	for rows.Next() {
		var (
			code string
			n    int64
		)
		if err = rows.Scan(&code, &n); err != nil {
			return nil, err
		}
		out[domain.ActionCode(code)] = int(n)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
