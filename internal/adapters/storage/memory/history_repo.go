package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"patient-history/internal/domain/history"

	"github.com/google/uuid"
)

type historyRepo struct {
	mu   sync.RWMutex
	byID map[string]history.Record
}

func NewHistoryRepo() history.Repository {
	return &historyRepo{
		byID: make(map[string]history.Record),
	}
}

func (r *historyRepo) FindByID(ctx context.Context, id string) (history.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.byID[id]
	if !ok {
		return history.Record{}, history.ErrNotFound
	}
	return h, nil
}

func (r *historyRepo) FindByPatientID(ctx context.Context, patientID int) ([]history.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]history.Record, 0)
	for _, h := range r.byID {
		if h.PatientID == patientID {
			out = append(out, h)
		}
	}
	sortRecords(out)
	return out, nil
}

func (r *historyRepo) FindAll(ctx context.Context) ([]history.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]history.Record, 0, len(r.byID))
	for _, h := range r.byID {
		out = append(out, h)
	}
	sortRecords(out)
	return out, nil
}

// Save hace upsert. Sin id => genera uno (como el store real al insertar).
func (r *historyRepo) Save(ctx context.Context, h history.Record) (history.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(h.ID) == "" {
		h.ID = uuid.NewString()
	}
	r.byID[h.ID] = h
	return h, nil
}

func (r *historyRepo) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return history.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// Orden estable por creation_date asc y luego id (solo para consistencia en dev)
func sortRecords(out []history.Record) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreationDate.Equal(out[j].CreationDate) {
			return out[i].CreationDate.Before(out[j].CreationDate)
		}
		return out[i].ID < out[j].ID
	})
}
