// Package testutil provee dobles de prueba compartidos. MemStore replica la
// semántica transaccional del Store real (commit al devolver nil, descarte en
// caso de error) para probar el motor sin base de datos.
package testutil

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/jhoicas/Pallets-api/internal/domain"
	"github.com/jhoicas/Pallets-api/internal/domain/entity"
	"github.com/jhoicas/Pallets-api/internal/domain/repository"
)

// ErrStorageFailure es la falla de almacenamiento que inyectan las pruebas.
var ErrStorageFailure = errors.New("testutil: falla de almacenamiento inyectada")

var (
	_ repository.UnitRepository           = (*MemStore)(nil)
	_ repository.TransactionLogRepository = (*MemStore)(nil)
	_ repository.UnitRepository           = (*txUnitRepo)(nil)
	_ repository.TransactionLogRepository = (*txLogRepo)(nil)
)

// MemStore es un Store en memoria. Implementa repository.UnitRepository y
// repository.TransactionLogRepository sobre el estado confirmado, y
// ledger.TxRunner con estado provisional que solo se publica si el callback
// devuelve nil.
type MemStore struct {
	mu        sync.Mutex
	units     map[string]entity.Unit
	logs      []entity.TransactionLogEntry
	nextLogID int64

	// Banderas de inyección de fallas: el próximo write del tipo indicado
	// devuelve ErrStorageFailure.
	FailUnitWrites bool
	FailLogAppend  bool
}

// NewMemStore construye un Store vacío.
func NewMemStore() *MemStore {
	return &MemStore{units: make(map[string]entity.Unit), nextLogID: 1}
}

// Seed inserta estibas directamente en el estado confirmado (solo fixtures).
func (s *MemStore) Seed(units ...entity.Unit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range units {
		s.units[u.UnitID] = u
	}
}

// SeedLog agrega filas al libro confirmado asignando LogID (solo fixtures).
func (s *MemStore) SeedLog(entries ...entity.TransactionLogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		e.LogID = s.nextLogID
		s.nextLogID++
		s.logs = append(s.logs, e)
	}
}

// ─────────────────────────────────────────────
// TxRunner
// ─────────────────────────────────────────────

type memTx struct {
	store *MemStore
	units map[string]entity.Unit
	logs  []entity.TransactionLogEntry
	next  int64
}

// Run clona el estado, ejecuta fn sobre el clon y publica los cambios solo si
// fn devuelve nil. Serializa las transacciones con el mutex del Store.
func (s *MemStore) Run(_ context.Context, fn func(
	unitRepo repository.UnitRepository,
	logRepo repository.TransactionLogRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &memTx{
		store: s,
		units: maps.Clone(s.units),
		logs:  slices.Clone(s.logs),
		next:  s.nextLogID,
	}
	if err := fn(&txUnitRepo{tx: tx}, &txLogRepo{tx: tx}); err != nil {
		return err
	}
	s.units = tx.units
	s.logs = tx.logs
	s.nextLogID = tx.next
	return nil
}

type txUnitRepo struct{ tx *memTx }

func (r *txUnitRepo) GetByID(unitID string) (*entity.Unit, error) {
	return getUnit(r.tx.units, unitID)
}

func (r *txUnitRepo) GetByIDForUpdate(unitID string) (*entity.Unit, error) {
	// El mutex del Store ya serializa las transacciones; no hay bloqueo por fila.
	return getUnit(r.tx.units, unitID)
}

func (r *txUnitRepo) Insert(u *entity.Unit) error {
	if r.tx.store.FailUnitWrites {
		return ErrStorageFailure
	}
	if _, ok := r.tx.units[u.UnitID]; ok {
		return domain.ErrDuplicate
	}
	r.tx.units[u.UnitID] = *u
	return nil
}

func (r *txUnitRepo) Update(u *entity.Unit) error {
	if r.tx.store.FailUnitWrites {
		return ErrStorageFailure
	}
	if _, ok := r.tx.units[u.UnitID]; !ok {
		return domain.ErrNotFound
	}
	r.tx.units[u.UnitID] = *u
	return nil
}

func (r *txUnitRepo) List(f repository.UnitFilter) ([]*entity.Unit, error) {
	return listUnits(r.tx.units, f), nil
}

type txLogRepo struct{ tx *memTx }

func (r *txLogRepo) Append(e *entity.TransactionLogEntry) error {
	if r.tx.store.FailLogAppend {
		return ErrStorageFailure
	}
	e.LogID = r.tx.next
	r.tx.next++
	r.tx.logs = append(r.tx.logs, *e)
	return nil
}

func (r *txLogRepo) ListByUnit(unitID string) ([]*entity.TransactionLogEntry, error) {
	return logsByUnit(r.tx.logs, unitID), nil
}

func (r *txLogRepo) ListRecent(limit int) ([]*entity.TransactionLogEntry, error) {
	return recentLogs(r.tx.logs, limit), nil
}

// ─────────────────────────────────────────────
// Repositorios directos (estado confirmado)
// ─────────────────────────────────────────────

func (s *MemStore) GetByID(unitID string) (*entity.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return getUnit(s.units, unitID)
}

func (s *MemStore) GetByIDForUpdate(unitID string) (*entity.Unit, error) {
	return s.GetByID(unitID)
}

func (s *MemStore) Insert(u *entity.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUnitWrites {
		return ErrStorageFailure
	}
	if _, ok := s.units[u.UnitID]; ok {
		return domain.ErrDuplicate
	}
	s.units[u.UnitID] = *u
	return nil
}

func (s *MemStore) Update(u *entity.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUnitWrites {
		return ErrStorageFailure
	}
	if _, ok := s.units[u.UnitID]; !ok {
		return domain.ErrNotFound
	}
	s.units[u.UnitID] = *u
	return nil
}

func (s *MemStore) List(f repository.UnitFilter) ([]*entity.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return listUnits(s.units, f), nil
}

func (s *MemStore) Append(e *entity.TransactionLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailLogAppend {
		return ErrStorageFailure
	}
	e.LogID = s.nextLogID
	s.nextLogID++
	s.logs = append(s.logs, *e)
	return nil
}

func (s *MemStore) ListByUnit(unitID string) ([]*entity.TransactionLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return logsByUnit(s.logs, unitID), nil
}

func (s *MemStore) ListRecent(limit int) ([]*entity.TransactionLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return recentLogs(s.logs, limit), nil
}

// ─────────────────────────────────────────────
// Lógica compartida
// ─────────────────────────────────────────────

func getUnit(units map[string]entity.Unit, unitID string) (*entity.Unit, error) {
	u, ok := units[unitID]
	if !ok {
		return nil, nil
	}
	cp := u
	return &cp, nil
}

// listUnits replica el orden y los filtros de los repositorios SQL para que
// las pruebas sobre MemStore y sobre SQLite observen lo mismo.
func listUnits(units map[string]entity.Unit, f repository.UnitFilter) []*entity.Unit {
	out := make([]*entity.Unit, 0, len(units))
	for _, u := range units {
		if f.Status != "" && u.Status != f.Status {
			continue
		}
		if f.Level != "" && u.Level != f.Level {
			continue
		}
		if f.QuantityBelow != nil && u.Quantity >= *f.QuantityBelow {
			continue
		}
		if f.DeadlineBefore != nil {
			if u.Deadline == nil || u.Deadline.After(*f.DeadlineBefore) {
				continue
			}
		}
		cp := u
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch f.OrderBy {
		case "deadline":
			// Sin fecha límite al final, como NULLS LAST.
			switch {
			case a.Deadline == nil && b.Deadline == nil:
				return a.UnitID < b.UnitID
			case a.Deadline == nil:
				return false
			case b.Deadline == nil:
				return true
			case !a.Deadline.Equal(*b.Deadline):
				return a.Deadline.Before(*b.Deadline)
			}
		case "last_updated":
			if !a.LastUpdated.Equal(b.LastUpdated) {
				return a.LastUpdated.After(b.LastUpdated)
			}
		case "quantity":
			if a.Quantity != b.Quantity {
				return a.Quantity < b.Quantity
			}
		}
		return a.UnitID < b.UnitID
	})
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

func logsByUnit(logs []entity.TransactionLogEntry, unitID string) []*entity.TransactionLogEntry {
	var out []*entity.TransactionLogEntry
	for i := range logs {
		if logs[i].UnitID == unitID {
			cp := logs[i]
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LogID < out[j].LogID })
	return out
}

func recentLogs(logs []entity.TransactionLogEntry, limit int) []*entity.TransactionLogEntry {
	out := make([]*entity.TransactionLogEntry, 0, len(logs))
	for i := range logs {
		cp := logs[i]
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LogID > out[j].LogID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
