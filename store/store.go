package store

import (
	"context"

	"github.com/Nwakakukaks/mont/models"
)

// Table names the two logical form collections. Forms created during the
// onboarding flow live apart from general-purpose forms, but both share one
// id space and resolve through the same lookup path.
type Table string

const (
	TableForms      Table = "forms"
	TableOnboarding Table = "onboarding_forms"
)

// Store is the persistence gateway the engine talks to. Saves replace whole
// records keyed by id; there is no optimistic concurrency, the later save
// wins.
type Store interface {
	// Save upserts the record into the given table. The record must carry an
	// OwnerID; Save fails with ErrUnauthenticated otherwise. UpdatedAt and
	// SchemaVersion are stamped by the store.
	Save(ctx context.Context, table Table, rec *models.FormRecord) error

	// LoadByID looks the id up in forms first, then onboarding_forms, so a
	// share link resolves without knowing which kind of form it points at.
	// Returns ErrNotFound only after both tables missed.
	LoadByID(ctx context.Context, id string) (*models.FormRecord, Table, error)

	// ListByOwner returns every record owned by the identity in the table,
	// newest first.
	ListByOwner(ctx context.Context, table Table, ownerID string) ([]models.FormListEntry, error)

	// DeleteByID removes the record if it exists and is owned by ownerID.
	// Fails with ErrUnauthenticated when ownerID is empty.
	DeleteByID(ctx context.Context, table Table, id, ownerID string) error

	// SaveResponse appends a respondent submission for a form.
	SaveResponse(ctx context.Context, resp *models.FormResponse) error

	// ListResponses returns every submission recorded for the form.
	ListResponses(ctx context.Context, formID string) ([]models.FormResponse, error)
}
