package engine_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nwakakukaks/mont/engine"
	"github.com/Nwakakukaks/mont/handoff"
	"github.com/Nwakakukaks/mont/models"
)

func TestHydrationAdoptsHandoffExactlyOnce(t *testing.T) {
	ctx := context.Background()
	slot := handoff.NewMemory()

	state := models.DefaultFormState()
	state.Welcome.Title = "Handed over"
	payload, err := json.Marshal(map[string]any{"formState": state})
	require.NoError(t, err)
	require.NoError(t, slot.Put(ctx, "session-1", payload))

	first := engine.New(ctx, engine.Options{Handoff: slot, Session: "session-1"})
	assert.Equal(t, "Handed over", first.Snapshot().Welcome.Title)

	// The payload was consumed; a second engine in the same session starts
	// from defaults.
	second := engine.New(ctx, engine.Options{Handoff: slot, Session: "session-1"})
	assert.Equal(t, models.DefaultFormState().Welcome.Title, second.Snapshot().Welcome.Title)
}

func TestHydrationWithoutSlotUsesDefaults(t *testing.T) {
	eng := engine.New(context.Background(), engine.Options{})
	assert.Equal(t, models.DefaultFormState(), eng.Snapshot())
}

func TestHydrationDiscardsMalformedPayload(t *testing.T) {
	ctx := context.Background()
	slot := handoff.NewMemory()
	require.NoError(t, slot.Put(ctx, "session-1", []byte("{not json")))

	eng := engine.New(ctx, engine.Options{Handoff: slot, Session: "session-1"})
	assert.Equal(t, models.DefaultFormState(), eng.Snapshot())

	// Malformed or not, the slot is emptied by the read.
	_, err := slot.Take(ctx, "session-1")
	assert.ErrorIs(t, err, handoff.ErrEmpty)
}

func TestHydrationNormalizesPartialPayload(t *testing.T) {
	ctx := context.Background()
	slot := handoff.NewMemory()

	// A v1-shaped payload: customer fields present, inputs and social
	// handle missing entirely.
	payload := []byte(`{"formState":{"form":{"title":"Old"},"customer":{"fields":{"name":{"enabled":true,"required":true}}}}}`)
	require.NoError(t, slot.Put(ctx, "session-1", payload))

	eng := engine.New(ctx, engine.Options{Handoff: slot, Session: "session-1"})
	state := eng.Snapshot()

	assert.Equal(t, "Old", state.Form.Title)
	assert.Contains(t, state.CustomerInputs, "name")
	assert.NotEmpty(t, state.SocialHandle.Profile.Name)
	assert.NotEmpty(t, state.Welcome.Title)
}
