package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Nwakakukaks/mont/engine"
	"github.com/Nwakakukaks/mont/models"
	"github.com/Nwakakukaks/mont/render"
	"github.com/Nwakakukaks/mont/store"
	u "github.com/Nwakakukaks/mont/utils"
)

type responseBody struct {
	Inputs   map[string]string `json:"inputs"`
	Rating   *int              `json:"rating"`
	VideoURL string            `json:"videoUrl"`
}

// CreateResponse records a respondent submission. The inputs run through the
// engine's customerInputs merge (unknown keys drop) and must satisfy the
// form's required-field rules.
var CreateResponse = func(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formid"]

	body := &responseBody{}
	err := json.NewDecoder(r.Body).Decode(body)
	if err != nil {
		u.Respond(w, u.Message(false, err.Error()), 400)
		return
	}

	eng := engine.New(r.Context(), engine.Options{Store: deps.Store, Logger: deps.Log})
	if err := eng.LoadForm(r.Context(), formID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			u.Respond(w, u.Message(false, "Not Found"), 404)
			return
		}
		u.Respond(w, u.Message(false, err.Error()), 500)
		return
	}

	partial := engine.Partial{}
	for key, value := range body.Inputs {
		partial[key] = value
	}
	state, err := eng.UpdateCustomerInputs(partial)
	if err != nil {
		u.Respond(w, u.Message(false, err.Error()), 400)
		return
	}

	if missing := render.MissingRequired(state.Customer.Fields, state.CustomerInputs); len(missing) > 0 {
		u.Respond(w, map[string]interface{}{
			"status":  false,
			"message": "Missing required fields",
			"fields":  missing,
		}, 400)
		return
	}

	if body.Rating != nil && state.Response.EnableRating {
		if state, err = eng.SetRating(*body.Rating); err != nil {
			u.Respond(w, u.Message(false, err.Error()), 400)
			return
		}
	}

	response := &models.FormResponse{
		FormID:   formID,
		Inputs:   state.CustomerInputs,
		Rating:   state.Response.Rating,
		VideoURL: body.VideoURL,
	}

	if err := deps.Store.SaveResponse(r.Context(), response); err != nil {
		deps.Log.WithError(err).Error("saving response")
		u.Respond(w, u.Message(false, err.Error()), 500)
		return
	}

	u.Respond(w, u.Message(true, "Response recorded"), 200)
}

// GetResponses returns every submission for a form; creator only.
var GetResponses = func(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formid"]

	userID := GetUserID(w, r, true)
	if userID == "" {
		return
	}

	rec, _, err := deps.Store.LoadByID(r.Context(), formID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			u.Respond(w, u.Message(false, "Not Found"), 404)
			return
		}
		u.Respond(w, u.Message(false, err.Error()), 500)
		return
	}
	if rec.OwnerID != userID {
		u.Respond(w, u.Message(false, "Unauthorized access"), 403)
		return
	}

	responses, err := deps.Store.ListResponses(r.Context(), formID)
	if err != nil {
		deps.Log.WithError(err).Error("listing responses")
		u.Respond(w, u.Message(false, err.Error()), 500)
		return
	}

	u.Respond(w, responses, 200)
}

// GetFormControls returns the ordered input controls the respondent view must
// present for a form, derived from its field-enablement map.
var GetFormControls = func(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formid"]

	rec, _, err := deps.Store.LoadByID(r.Context(), formID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			u.Respond(w, u.Message(false, "Not Found"), 404)
			return
		}
		u.Respond(w, u.Message(false, err.Error()), 500)
		return
	}

	controls := render.Controls(rec.State.Customer.Fields, rec.State.CustomerInputs)
	u.Respond(w, controls, 200)
}
