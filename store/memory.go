package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Nwakakukaks/mont/models"
)

// Memory is an in-process Store used by tests and local development. It
// mirrors the Mongo implementation's semantics: whole-record upserts, the
// forms → onboarding_forms fallback chain, owner-scoped deletes.
type Memory struct {
	mu        sync.Mutex
	tables    map[Table]map[string]models.FormRecord
	responses map[string][]models.FormResponse
}

func NewMemory() *Memory {
	return &Memory{
		tables: map[Table]map[string]models.FormRecord{
			TableForms:      {},
			TableOnboarding: {},
		},
		responses: map[string][]models.FormResponse{},
	}
}

func (m *Memory) Save(ctx context.Context, table Table, rec *models.FormRecord) error {
	if rec.OwnerID == "" {
		return ErrUnauthenticated
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec.UpdatedAt = time.Now().UTC()
	rec.SchemaVersion = models.SchemaVersion
	m.tables[table][rec.ID] = *rec
	return nil
}

func (m *Memory) LoadByID(ctx context.Context, id string) (*models.FormRecord, Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, table := range []Table{TableForms, TableOnboarding} {
		if rec, ok := m.tables[table][id]; ok {
			models.Normalize(&rec.State)
			return &rec, table, nil
		}
	}
	return nil, "", ErrNotFound
}

func (m *Memory) ListByOwner(ctx context.Context, table Table, ownerID string) ([]models.FormListEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recs := []models.FormRecord{}
	for _, rec := range m.tables[table] {
		if rec.OwnerID == ownerID {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].UpdatedAt.After(recs[j].UpdatedAt)
	})

	entries := []models.FormListEntry{}
	for _, rec := range recs {
		entries = append(entries, models.FormListEntry{ID: rec.ID, Title: rec.Title, State: rec.State})
	}
	return entries, nil
}

func (m *Memory) DeleteByID(ctx context.Context, table Table, id, ownerID string) error {
	if ownerID == "" {
		return ErrUnauthenticated
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.tables[table][id]
	if !ok || rec.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(m.tables[table], id)
	delete(m.responses, id)
	return nil
}

func (m *Memory) SaveResponse(ctx context.Context, resp *models.FormResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	resp.Timestamp = time.Now().UTC()
	m.responses[resp.FormID] = append(m.responses[resp.FormID], *resp)
	return nil
}

func (m *Memory) ListResponses(ctx context.Context, formID string) ([]models.FormResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]models.FormResponse{}, m.responses[formID]...), nil
}
