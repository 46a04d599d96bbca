package models

import "time"

// SchemaVersion is stamped on every persisted record. Version 1 was the
// minimal tree without socialHandle or the onboarding table; loading a v1
// record goes through Normalize to reach the current shape.
const SchemaVersion = 2

// FormRecord is one row in the forms or onboarding_forms collection. The
// whole configuration tree is stored as a single nested document; saves
// replace the record wholesale, last write wins.
type FormRecord struct {
	ID            string    `json:"id" bson:"_id"`
	Title         string    `json:"title" bson:"title"`
	OwnerID       string    `json:"ownerId" bson:"ownerId"`
	State         FormState `json:"state" bson:"state"`
	SchemaVersion int       `json:"schemaVersion" bson:"schemaVersion"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// FormListEntry is the projection returned by owner listings.
type FormListEntry struct {
	ID    string    `json:"id" bson:"_id"`
	Title string    `json:"title" bson:"title"`
	State FormState `json:"state" bson:"state"`
}

// FormResponse is one respondent submission for a published form.
type FormResponse struct {
	FormID    string            `json:"formId" bson:"formid"`
	Inputs    map[string]string `json:"inputs" bson:"inputs"`
	Rating    *int              `json:"rating" bson:"rating"`
	VideoURL  string            `json:"videoUrl" bson:"videoUrl"`
	Timestamp time.Time         `json:"timestamp" bson:"timestamp"`
}
