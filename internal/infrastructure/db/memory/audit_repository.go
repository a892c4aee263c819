package memory

import (
	"context"

	"hospital-admin-api/internal/domain/audit"
)

type auditRepository struct {
	s *Store
}

// AppendEntry stamps the entry with a timestamp that never goes below the
// previous one, even if the wall clock steps back.
func (r *auditRepository) AppendEntry(_ context.Context, e audit.Entry) (*audit.Entry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ts := r.s.clock().UTC()
	if ts.Before(r.s.data.lastTS) {
		ts = r.s.data.lastTS
	}
	r.s.data.lastTS = ts
	r.s.data.seq++

	e.ID = audit.ID(r.s.data.seq)
	e.CreatedAt = ts
	if e.TargetID != nil {
		id := *e.TargetID
		e.TargetID = &id
	}

	stored := e
	r.s.data.entries = append(r.s.data.entries, &stored)

	out := stored
	return &out, nil
}

func (r *auditRepository) ListEntries(_ context.Context, f audit.Filter) (audit.Entries, error) {
	limit := f.NormalizedLimit()

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make(audit.Entries, 0, min(limit, len(r.s.data.entries)))
	for i := len(r.s.data.entries) - 1; i >= 0 && len(out) < limit; i-- {
		e := r.s.data.entries[i]
		if !f.Match(e) {
			continue
		}
		c := *e
		out = append(out, &c)
	}

	return out, nil
}

func (r *auditRepository) CountByAction(_ context.Context) (map[audit.ActionCode]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make(map[audit.ActionCode]int)
	for _, e := range r.s.data.entries {
		out[e.ActionCode]++
	}

	return out, nil
}
