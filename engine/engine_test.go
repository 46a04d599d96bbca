package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nwakakukaks/mont/engine"
	"github.com/Nwakakukaks/mont/store"
)

func identity(userID string) engine.IdentityFunc {
	return func(context.Context) string { return userID }
}

func newStoredEngine(t *testing.T, st store.Store, userID string) *engine.Engine {
	t.Helper()
	return engine.New(context.Background(), engine.Options{
		Store:    st,
		Identity: identity(userID),
	})
}

func TestPersistenceWithoutStore(t *testing.T) {
	ctx := context.Background()
	eng := engine.New(ctx, engine.Options{Identity: identity("user-1")})

	assert.ErrorIs(t, eng.SaveForm(ctx), engine.ErrNoStore)
	assert.ErrorIs(t, eng.LoadForm(ctx, "f1"), engine.ErrNoStore)
	_, err := eng.LoadForms(ctx)
	assert.ErrorIs(t, err, engine.ErrNoStore)
	assert.ErrorIs(t, eng.DeleteForm(ctx, "f1"), engine.ErrNoStore)
}

func TestSaveAssignsStableID(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	eng := newStoredEngine(t, st, "user-1")

	assert.Equal(t, "", eng.Snapshot().Form.ID)

	require.NoError(t, eng.SaveForm(ctx))
	id := eng.Snapshot().Form.ID
	require.NotEmpty(t, id)

	// A second save reuses the id instead of minting a new record.
	_, err := eng.UpdateDesign(engine.Partial{"primaryColor": "#111111"})
	require.NoError(t, err)
	require.NoError(t, eng.SaveForm(ctx))
	assert.Equal(t, id, eng.Snapshot().Form.ID)

	entries, err := st.ListByOwner(ctx, store.TableForms, "user-1")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveUnauthenticated(t *testing.T) {
	ctx := context.Background()
	eng := newStoredEngine(t, store.NewMemory(), "")

	err := eng.SaveForm(ctx)
	assert.ErrorIs(t, err, store.ErrUnauthenticated)

	// The tree is left unchanged on failure.
	assert.Equal(t, "", eng.Snapshot().Form.ID)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	author := newStoredEngine(t, st, "user-1")
	_, err := author.UpdateWelcome(engine.Partial{"title": "Tell us everything"})
	require.NoError(t, err)
	_, err = author.UpdateDesign(engine.Partial{"primaryColor": "#ABCDEF"})
	require.NoError(t, err)
	require.NoError(t, author.SaveForm(ctx))

	reader := newStoredEngine(t, st, "user-1")
	require.NoError(t, reader.LoadForm(ctx, author.Snapshot().Form.ID))

	assert.Equal(t, author.Snapshot(), reader.Snapshot())
	assert.False(t, reader.UpdatedAt().IsZero())
}

func TestLoadFallbackChain(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	author := newStoredEngine(t, st, "user-1")
	require.NoError(t, author.SaveOnboardingForm(ctx))
	id := author.Snapshot().Form.ID

	// The id lives only in onboarding_forms; the load still resolves it.
	reader := newStoredEngine(t, st, "user-2")
	require.NoError(t, reader.LoadForm(ctx, id))
	assert.Equal(t, id, reader.Snapshot().Form.ID)

	err := reader.LoadForm(ctx, "no-such-id")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLastWriteWins(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	first := newStoredEngine(t, st, "user-1")
	_, err := first.UpdateDesign(engine.Partial{"primaryColor": "#111111"})
	require.NoError(t, err)
	require.NoError(t, first.SaveForm(ctx))
	id := first.Snapshot().Form.ID

	second := newStoredEngine(t, st, "user-1")
	require.NoError(t, second.LoadForm(ctx, id))
	_, err = second.UpdateDesign(engine.Partial{"primaryColor": "#222222"})
	require.NoError(t, err)
	require.NoError(t, second.SaveForm(ctx))

	// No merge: the later whole-record save is what a load returns.
	reader := newStoredEngine(t, st, "user-1")
	require.NoError(t, reader.LoadForm(ctx, id))
	assert.Equal(t, "#222222", reader.Snapshot().Design.PrimaryColor)
}

func TestDeleteForm(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	eng := newStoredEngine(t, st, "user-1")
	require.NoError(t, eng.SaveForm(ctx))
	id := eng.Snapshot().Form.ID

	// A stranger cannot delete it.
	stranger := newStoredEngine(t, st, "user-2")
	assert.ErrorIs(t, stranger.DeleteForm(ctx, id), store.ErrNotFound)

	require.NoError(t, eng.DeleteForm(ctx, id))
	err := eng.LoadForm(ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLoadFormsCachesLists(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	eng := newStoredEngine(t, st, "user-1")
	require.NoError(t, eng.SaveForm(ctx))

	entries, err := eng.LoadForms(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entries, eng.Forms())

	onboarding, err := eng.LoadOnboardingForms(ctx)
	require.NoError(t, err)
	assert.Empty(t, onboarding)

	// Listing requires an identity.
	anon := newStoredEngine(t, st, "")
	_, err = anon.LoadForms(ctx)
	assert.ErrorIs(t, err, store.ErrUnauthenticated)
}
