// Package render turns the customer field-rule map into the ordered set of
// input controls a respondent-facing view presents. It stops at descriptors;
// drawing them is the consuming UI's job.
package render

import "github.com/Nwakakukaks/mont/models"

type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindFile     Kind = "file"
	KindTextarea Kind = "textarea"
)

// Control describes one input the respondent view must present. Value seeds
// the control with whatever the respondent already entered; for the photo
// field it is the upload pipeline's URL (local preview while pending,
// canonical once the upload resolved).
type Control struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
	Kind        Kind   `json:"kind"`
	Required    bool   `json:"required"`
	Value       string `json:"value"`
}

type descriptor struct {
	key         string
	label       string
	placeholder string
	kind        Kind
}

// Presentation order is fixed regardless of map iteration order.
var descriptors = []descriptor{
	{"name", "Name", "Enter your name", KindText},
	{"projectName", "Project name", "Enter your project name", KindText},
	{"email", "Email", "Enter your email", KindEmail},
	{"walletAddress", "Wallet address", "Enter your wallet address", KindText},
	{"nationality", "Region", "Where are you participating from ?", KindText},
	{"photo", "Photo", "Upload image", KindFile},
	{"comment", "Additional comments", "Comments", KindTextarea},
}

// Controls builds the control list for the enabled fields. Disabled fields
// are skipped entirely, not rendered greyed out.
func Controls(fields map[string]models.FieldRule, inputs map[string]string) []Control {
	controls := []Control{}
	for _, d := range descriptors {
		rule, ok := fields[d.key]
		if !ok || !rule.Enabled {
			continue
		}
		controls = append(controls, Control{
			Key:         d.key,
			Label:       d.label,
			Placeholder: d.placeholder,
			Kind:        d.kind,
			Required:    rule.Required,
			Value:       inputs[d.key],
		})
	}
	return controls
}

// MissingRequired lists the enabled, required fields whose input is still
// empty, in presentation order. The consuming UI blocks submission while this
// is non-empty; the engine itself never enforces it.
func MissingRequired(fields map[string]models.FieldRule, inputs map[string]string) []string {
	missing := []string{}
	for _, d := range descriptors {
		rule, ok := fields[d.key]
		if !ok || !rule.Enabled || !rule.Required {
			continue
		}
		if inputs[d.key] == "" {
			missing = append(missing, d.key)
		}
	}
	return missing
}
