package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Nwakakukaks/mont/models"
	"github.com/Nwakakukaks/mont/store"
	u "github.com/Nwakakukaks/mont/utils"
)

// SaveForm upserts a whole configuration tree into the forms table. POST
// creates (assigning a fresh UUID when the tree carries none), PUT addresses
// an existing id.
var SaveForm = func(w http.ResponseWriter, r *http.Request) {
	saveForm(w, r, store.TableForms)
}

// SaveOnboardingForm is SaveForm against the onboarding table.
var SaveOnboardingForm = func(w http.ResponseWriter, r *http.Request) {
	saveForm(w, r, store.TableOnboarding)
}

func saveForm(w http.ResponseWriter, r *http.Request, table store.Table) {
	// Check authentication
	userID := GetUserID(w, r, true)
	if userID == "" {
		return
	}

	// Decode the JSON tree
	state := &models.FormState{}
	err := json.NewDecoder(r.Body).Decode(state)
	if err != nil {
		deps.Log.WithError(err).Warn("decoding form state")
		u.Respond(w, u.Message(false, err.Error()), 400)
		return
	}
	models.Normalize(state)

	id := mux.Vars(r)["id"]
	if id == "" {
		id = state.Form.ID
	}
	if id == "" {
		id = uuid.NewString()
	}

	// Saves overwrite whole records; make sure the id belongs to the caller
	// before letting the overwrite through.
	if existing, _, err := deps.Store.LoadByID(r.Context(), id); err == nil && existing.OwnerID != userID {
		u.Respond(w, u.Message(false, "Unauthorized access"), 403)
		return
	}

	state.Form.ID = id
	state.Form.CreatorID = userID

	rec := &models.FormRecord{
		ID:      id,
		Title:   state.Form.Title,
		OwnerID: userID,
		State:   *state,
	}

	if err := deps.Store.Save(r.Context(), table, rec); err != nil {
		deps.Log.WithError(err).Error("saving form")
		u.Respond(w, u.Message(false, "Failed to save form"), 500)
		return
	}

	deps.Log.WithField("user", userID).Info("saved form ", id)
	u.Respond(w, map[string]interface{}{"id": id}, 200)
}

// GetForm resolves a share-link id through the fallback chain: the forms
// table first, then onboarding_forms.
var GetForm = func(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	rec, table, err := deps.Store.LoadByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			u.Respond(w, u.Message(false, "Not Found"), 404)
			return
		}
		deps.Log.WithError(err).Error("loading form")
		u.Respond(w, u.Message(false, err.Error()), 500)
		return
	}

	u.Respond(w, map[string]interface{}{
		"id":        rec.ID,
		"table":     table,
		"state":     rec.State,
		"updatedAt": rec.UpdatedAt,
	}, 200)
}

// GetAllForms lists the forms owned by the caller.
var GetAllForms = func(w http.ResponseWriter, r *http.Request) {
	listForms(w, r, store.TableForms)
}

// GetOnboardingForms lists the caller's onboarding forms.
var GetOnboardingForms = func(w http.ResponseWriter, r *http.Request) {
	listForms(w, r, store.TableOnboarding)
}

func listForms(w http.ResponseWriter, r *http.Request, table store.Table) {
	userID := GetUserID(w, r, true)
	if userID == "" {
		return
	}

	entries, err := deps.Store.ListByOwner(r.Context(), table, userID)
	if err != nil {
		deps.Log.WithError(err).Error("listing forms")
		u.Respond(w, u.Message(false, err.Error()), 500)
		return
	}
	u.Respond(w, entries, 200)
}

// DeleteForm removes a form owned by the caller. ?table=onboarding_forms
// targets the onboarding table.
var DeleteForm = func(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	userID := GetUserID(w, r, true)
	if userID == "" {
		return
	}

	table := store.TableForms
	if r.URL.Query().Get("table") == string(store.TableOnboarding) {
		table = store.TableOnboarding
	}

	err := deps.Store.DeleteByID(r.Context(), table, id, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			u.Respond(w, u.Message(false, "Only form creator can delete form. Unauthorized access"), 403)
			return
		}
		deps.Log.WithError(err).Error("deleting form")
		u.Respond(w, u.Message(false, err.Error()), 500)
		return
	}

	deps.Log.Info("form ", id, " and its responses deleted")
	u.Respond(w, u.Message(true, "Form deleted"), 200)
}
