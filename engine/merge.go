package engine

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/Nwakakukaks/mont/models"
)

// Section names one top-level subtree of the configuration tree.
type Section string

const (
	SectionForm           Section = "form"
	SectionDesign         Section = "design"
	SectionWelcome        Section = "welcome"
	SectionResponse       Section = "response"
	SectionCustomer       Section = "customer"
	SectionCustomerInputs Section = "customerInputs"
	SectionThanks         Section = "thanks"
	SectionSocialHandle   Section = "socialHandle"
)

// Partial is a patch for one section, keyed by the section's top-level field
// names in their serialized form.
type Partial map[string]any

// mergeInto applies the partial's top-level keys onto the section, leaving
// keys the partial does not name untouched. Anything below the top level is
// replaced wholesale, never deep-merged: patching design with
// {logo: {previewUrl: ...}} replaces the entire logo object, so a caller that
// wants to keep rawFile has to carry it forward itself. That is the contract,
// not an accident.
func mergeInto(section any, partial Partial) error {
	raw, err := json.Marshal(section)
	if err != nil {
		return fmt.Errorf("engine: merge: %w", err)
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("engine: merge: %w", err)
	}

	for key, value := range partial {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("engine: merge key %q: %w", key, err)
		}
		fields[key] = encoded
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("engine: merge: %w", err)
	}

	// Decode into a fresh zero value, not into the live section: json leaves
	// struct fields and map keys absent from the document untouched, which
	// would quietly deep-merge nested objects instead of replacing them.
	rv := reflect.ValueOf(section)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("engine: merge: section must be a non-nil pointer, got %T", section)
	}
	fresh := reflect.New(rv.Type().Elem())
	if err := json.Unmarshal(merged, fresh.Interface()); err != nil {
		return fmt.Errorf("engine: merge: %w", err)
	}
	rv.Elem().Set(fresh.Elem())
	return nil
}

// cloneState deep-copies the tree so no caller ever holds a mutable
// reference into the engine's own copy.
func cloneState(s models.FormState) models.FormState {
	raw, err := json.Marshal(s)
	if err != nil {
		// The tree is plain data; marshalling it cannot fail.
		panic(fmt.Sprintf("engine: clone: %v", err))
	}
	var out models.FormState
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("engine: clone: %v", err))
	}
	return out
}
