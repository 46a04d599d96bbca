package engine

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Nwakakukaks/mont/handoff"
	"github.com/Nwakakukaks/mont/models"
)

// handoffEnvelope is the serialized shape placed in the session slot when one
// page hands a form over to a fresh editor instance.
type handoffEnvelope struct {
	FormState models.FormState `json:"formState"`
}

// bootstrap picks the engine's initial tree. Taking the payload deletes it
// from the slot, so a second engine built in the same session starts from
// defaults. A payload that cannot be read or decoded also falls back to
// defaults rather than failing construction.
func bootstrap(ctx context.Context, slot handoff.Slot, session string, log *logrus.Entry) models.FormState {
	if slot == nil || session == "" {
		return models.DefaultFormState()
	}

	payload, err := slot.Take(ctx, session)
	if err != nil {
		if !errors.Is(err, handoff.ErrEmpty) {
			log.WithError(err).Warn("reading handoff slot")
		}
		return models.DefaultFormState()
	}

	env := handoffEnvelope{}
	if err := json.Unmarshal(payload, &env); err != nil {
		log.WithError(err).Warn("discarding malformed handoff payload")
		return models.DefaultFormState()
	}

	models.Normalize(&env.FormState)
	return env.FormState
}
