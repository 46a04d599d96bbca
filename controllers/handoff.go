package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Nwakakukaks/mont/engine"
	u "github.com/Nwakakukaks/mont/utils"
)

const sessionCookie = "mont_session"

// sessionKey identifies the browsing session for the handoff slot,
// assigning a session cookie when none exists yet.
func sessionKey(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	key := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:    sessionCookie,
		Value:   key,
		Expires: time.Now().Add(24 * time.Hour),
	})
	return key
}

// CreateHandoff stores a {formState} envelope in the session's handoff slot.
// The next editor construction for this session adopts it as initial state;
// the slot empties on that read.
var CreateHandoff = func(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadSize))
	if err != nil {
		u.Respond(w, u.Message(false, err.Error()), 400)
		return
	}

	// Reject garbage early; hydration would silently fall back to defaults.
	if !json.Valid(payload) {
		u.Respond(w, u.Message(false, "Invalid payload"), 400)
		return
	}

	if err := deps.Slot.Put(r.Context(), sessionKey(w, r), payload); err != nil {
		deps.Log.WithError(err).Error("storing handoff payload")
		u.Respond(w, u.Message(false, err.Error()), 500)
		return
	}

	u.Respond(w, u.Message(true, "Handoff stored"), 200)
}

// GetEditorState constructs a fresh engine for the session and returns its
// initial tree: the handed-off state if the slot held one, defaults
// otherwise.
var GetEditorState = func(w http.ResponseWriter, r *http.Request) {
	eng := engine.New(r.Context(), engine.Options{
		Store:   deps.Store,
		Handoff: deps.Slot,
		Session: sessionKey(w, r),
		Logger:  deps.Log,
	})

	u.Respond(w, map[string]interface{}{
		"formState": eng.Snapshot(),
		"view":      eng.View(),
	}, 200)
}
