package handoff_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nwakakukaks/mont/handoff"
)

func TestMemorySlotTakeDeletes(t *testing.T) {
	ctx := context.Background()
	slot := handoff.NewMemory()

	require.NoError(t, slot.Put(ctx, "s1", []byte(`{"formState":{}}`)))

	payload, err := slot.Take(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, `{"formState":{}}`, string(payload))

	_, err = slot.Take(ctx, "s1")
	assert.ErrorIs(t, err, handoff.ErrEmpty)
}

func TestMemorySlotKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	slot := handoff.NewMemory()

	require.NoError(t, slot.Put(ctx, "s1", []byte("a")))
	require.NoError(t, slot.Put(ctx, "s2", []byte("b")))

	payload, err := slot.Take(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "a", string(payload))

	payload, err = slot.Take(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, "b", string(payload))
}

func TestMemorySlotOverwrite(t *testing.T) {
	ctx := context.Background()
	slot := handoff.NewMemory()

	require.NoError(t, slot.Put(ctx, "s1", []byte("old")))
	require.NoError(t, slot.Put(ctx, "s1", []byte("new")))

	payload, err := slot.Take(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "new", string(payload))
}
