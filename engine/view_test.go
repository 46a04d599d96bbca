package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nwakakukaks/mont/engine"
)

func TestViewStateIsEphemeral(t *testing.T) {
	eng := engine.New(context.Background(), engine.Options{})

	view := eng.View()
	assert.Equal(t, "design", view.ActiveView)
	require.NotNil(t, view.ExpandedItem)
	assert.Equal(t, "design", *view.ExpandedItem)
	assert.True(t, view.IsDesktop)

	welcome := "welcome"
	eng.SetActiveView("welcome")
	eng.SetExpandedItem(&welcome)
	eng.SetIsDesktop(false)

	view = eng.View()
	assert.Equal(t, "welcome", view.ActiveView)
	assert.Equal(t, "welcome", *view.ExpandedItem)
	assert.False(t, view.IsDesktop)

	eng.SetExpandedItem(nil)
	assert.Nil(t, eng.View().ExpandedItem)

	// None of it leaks into the configuration tree.
	_, err := eng.UpdateWelcome(engine.Partial{"title": "x"})
	require.NoError(t, err)
	assert.Equal(t, "welcome", eng.View().ActiveView)
}
