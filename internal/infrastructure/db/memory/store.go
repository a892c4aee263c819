// Package memory is a process-local Store used by the "memory" storage driver
// and by service tests. Transactions are serialized and run against a staged
// copy of the dataset that replaces the live one only on success.
package memory

import (
	"context"
	"sync"
	"time"

	"hospital-admin-api/internal/application/ports"
	"hospital-admin-api/internal/domain/account"
	"hospital-admin-api/internal/domain/audit"
)

const pageSize = account.PageSize

type (
	dataset struct {
		accounts map[account.Role]map[account.ID]*account.Account
		order    map[account.Role][]account.ID
		entries  []*audit.Entry
		seq      uint64
		lastTS   time.Time
	}

	Store struct {
		txMu  *sync.Mutex
		mu    *sync.RWMutex
		data  *dataset
		clock func() time.Time
		inTx  bool
	}
)

// New returns an empty store. A nil clock means time.Now.
func New(clock func() time.Time) *Store {
	if clock == nil {
		clock = time.Now
	}

	return &Store{
		txMu:  &sync.Mutex{},
		mu:    &sync.RWMutex{},
		data:  newDataset(),
		clock: clock,
	}
}

func newDataset() *dataset {
	return &dataset{
		accounts: map[account.Role]map[account.ID]*account.Account{
			account.RoleDoctor:  {},
			account.RolePatient: {},
		},
		order: map[account.Role][]account.ID{},
	}
}

func (s *Store) Accounts() account.Repository { return &accountRepository{s: s} }

func (s *Store) Audit() audit.Repository { return &auditRepository{s: s} }

func (s *Store) WithinTx(ctx context.Context, fn func(tx ports.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	staged := s.data.clone()
	s.mu.RUnlock()

	tx := &Store{
		txMu:  &sync.Mutex{},
		mu:    &sync.RWMutex{},
		data:  staged,
		clock: s.clock,
		inTx:  true,
	}
	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	*s.data = *staged
	s.mu.Unlock()

	return nil
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		accounts: make(map[account.Role]map[account.ID]*account.Account, len(d.accounts)),
		order:    make(map[account.Role][]account.ID, len(d.order)),
		entries:  make([]*audit.Entry, len(d.entries)),
		seq:      d.seq,
		lastTS:   d.lastTS,
	}
	for role, byID := range d.accounts {
		m := make(map[account.ID]*account.Account, len(byID))
		for id, a := range byID {
			m[id] = a.Clone()
		}
		c.accounts[role] = m
	}
	for role, ids := range d.order {
		c.order[role] = append([]account.ID(nil), ids...)
	}
	// entries are immutable, sharing pointers is fine
	copy(c.entries, d.entries)

	return c
}
