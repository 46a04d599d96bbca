package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nwakakukaks/mont/models"
	"github.com/Nwakakukaks/mont/store"
)

func record(id, owner string) *models.FormRecord {
	state := models.DefaultFormState()
	state.Form.ID = id
	state.Form.CreatorID = owner
	return &models.FormRecord{
		ID:      id,
		Title:   state.Form.Title,
		OwnerID: owner,
		State:   state,
	}
}

func TestSaveRequiresOwner(t *testing.T) {
	st := store.NewMemory()

	rec := record("f1", "")
	err := st.Save(context.Background(), store.TableForms, rec)
	assert.ErrorIs(t, err, store.ErrUnauthenticated)
}

func TestSaveStampsRecord(t *testing.T) {
	st := store.NewMemory()

	rec := record("f1", "user-1")
	require.NoError(t, st.Save(context.Background(), store.TableForms, rec))

	assert.False(t, rec.UpdatedAt.IsZero())
	assert.Equal(t, models.SchemaVersion, rec.SchemaVersion)
}

func TestLoadByIDFallbackChain(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	require.NoError(t, st.Save(ctx, store.TableOnboarding, record("ob-1", "user-1")))

	// Only onboarding_forms has the id, yet one lookup resolves it.
	rec, table, err := st.LoadByID(ctx, "ob-1")
	require.NoError(t, err)
	assert.Equal(t, store.TableOnboarding, table)
	assert.Equal(t, "ob-1", rec.ID)

	// Present in both tables: forms wins.
	require.NoError(t, st.Save(ctx, store.TableForms, record("ob-1", "user-2")))
	rec, table, err = st.LoadByID(ctx, "ob-1")
	require.NoError(t, err)
	assert.Equal(t, store.TableForms, table)
	assert.Equal(t, "user-2", rec.OwnerID)

	_, _, err = st.LoadByID(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSaveOverwritesWholeRecord(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	first := record("f1", "user-1")
	first.State.Design.PrimaryColor = "#111111"
	require.NoError(t, st.Save(ctx, store.TableForms, first))

	second := record("f1", "user-1")
	second.State.Design.PrimaryColor = "#222222"
	require.NoError(t, st.Save(ctx, store.TableForms, second))

	rec, _, err := st.LoadByID(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "#222222", rec.State.Design.PrimaryColor)
}

func TestDeleteScopedToOwner(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	require.NoError(t, st.Save(ctx, store.TableForms, record("f1", "user-1")))

	assert.ErrorIs(t, st.DeleteByID(ctx, store.TableForms, "f1", ""), store.ErrUnauthenticated)
	assert.ErrorIs(t, st.DeleteByID(ctx, store.TableForms, "f1", "user-2"), store.ErrNotFound)
	require.NoError(t, st.DeleteByID(ctx, store.TableForms, "f1", "user-1"))

	_, _, err := st.LoadByID(ctx, "f1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteRemovesResponses(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	require.NoError(t, st.Save(ctx, store.TableForms, record("f1", "user-1")))
	require.NoError(t, st.SaveResponse(ctx, &models.FormResponse{FormID: "f1", Inputs: map[string]string{"name": "Ada"}}))

	responses, err := st.ListResponses(ctx, "f1")
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.False(t, responses[0].Timestamp.IsZero())

	require.NoError(t, st.DeleteByID(ctx, store.TableForms, "f1", "user-1"))

	responses, err = st.ListResponses(ctx, "f1")
	require.NoError(t, err)
	assert.Empty(t, responses)
}

func TestListByOwnerNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	require.NoError(t, st.Save(ctx, store.TableForms, record("f1", "user-1")))
	require.NoError(t, st.Save(ctx, store.TableForms, record("f2", "user-1")))
	require.NoError(t, st.Save(ctx, store.TableForms, record("f3", "user-2")))

	entries, err := st.ListByOwner(ctx, store.TableForms, "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	ids := []string{entries[0].ID, entries[1].ID}
	assert.ElementsMatch(t, []string{"f1", "f2"}, ids)
}
