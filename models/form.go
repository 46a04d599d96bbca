package models

// FormState is the full configuration tree for one testimonial form. It is
// persisted wholesale as a single document; every top-level field is a
// section that can be patched independently (see the engine package).
type FormState struct {
	Form           Form              `json:"form" bson:"form"`
	Design         Design            `json:"design" bson:"design"`
	Welcome        Welcome           `json:"welcome" bson:"welcome"`
	Response       Response          `json:"response" bson:"response"`
	Customer       Customer          `json:"customer" bson:"customer"`
	CustomerInputs map[string]string `json:"customerInputs" bson:"customerInputs"`
	Thanks         Thanks            `json:"thanks" bson:"thanks"`
	SocialHandle   SocialHandle      `json:"socialHandle" bson:"socialHandle"`
}

// Form carries the identity of the form itself. ID stays empty until the
// first successful save assigns it a UUID; after that it never changes.
type Form struct {
	ID        string `json:"id" bson:"id"`
	CreatorID string `json:"creatorId" bson:"creatorId"`
	Title     string `json:"title" bson:"title"`
	Ad        bool   `json:"ad" bson:"ad"`
}

type Design struct {
	Logo            ImageAsset `json:"logo" bson:"logo"`
	Background      ImageAsset `json:"background" bson:"background"`
	PrimaryColor    string     `json:"primaryColor" bson:"primaryColor"`
	BackgroundColor string     `json:"backgroundColor" bson:"backgroundColor"`
	Font            string     `json:"font" bson:"font"`
	Gradient        Gradient   `json:"gradient" bson:"gradient"`
}

// ImageAsset is one image slot. RawFile describes the locally held binary
// (the bytes themselves never enter the tree); Preview is a local data URL
// until the upload pipeline replaces it with the canonical remote URL.
type ImageAsset struct {
	RawFile *FileHandle `json:"rawFile" bson:"rawFile"`
	Preview *string     `json:"previewUrl" bson:"previewUrl"`
}

// FileHandle is an opaque descriptor of a binary held by the session.
type FileHandle struct {
	Name        string `json:"name" bson:"name"`
	Size        int64  `json:"size" bson:"size"`
	ContentType string `json:"contentType" bson:"contentType"`
}

type Gradient struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

type Welcome struct {
	Title      string `json:"title" bson:"title"`
	Subtitle   string `json:"subtitle" bson:"subtitle"`
	Prompts    string `json:"prompts" bson:"prompts"`
	ButtonText string `json:"buttonText" bson:"buttonText"`
	ShowButton bool   `json:"showButton" bson:"showButton"`
}

type Response struct {
	Title         string  `json:"title" bson:"title"`
	Prompts       string  `json:"prompts" bson:"prompts"`
	EnableRating  bool    `json:"enableRating" bson:"enableRating"`
	Rating        *int    `json:"rating" bson:"rating"`
	VideoPreview  *string `json:"videoPreview" bson:"videoPreview"`
	VideoURL      *string `json:"videoUrl" bson:"videoUrl"`
	RecordingTime string  `json:"recordingTime" bson:"recordingTime"`
}

// Customer holds the enable/require flags for the detail fields shown to the
// respondent. Its key set is mirrored by FormState.CustomerInputs.
type Customer struct {
	Fields map[string]FieldRule `json:"fields" bson:"fields"`
}

type FieldRule struct {
	Enabled  bool `json:"enabled" bson:"enabled"`
	Required bool `json:"required" bson:"required"`
}

type Thanks struct {
	Title   string `json:"title" bson:"title"`
	Message string `json:"message" bson:"message"`
}

// SocialHandle is presentational sample data for the share preview, not
// authoritative business data.
type SocialHandle struct {
	Profile SocialProfile `json:"profile" bson:"profile"`
	Posts   []SocialPost  `json:"tweets" bson:"tweets"`
}

type SocialProfile struct {
	Name      string `json:"name" bson:"name"`
	Handle    string `json:"handle" bson:"handle"`
	Following int    `json:"following" bson:"following"`
	Followers int    `json:"followers" bson:"followers"`
	Bio       string `json:"bio" bson:"bio"`
}

type SocialPost struct {
	ID        string `json:"id" bson:"id"`
	Content   string `json:"content" bson:"content"`
	VideoURL  string `json:"videoUrl" bson:"videoUrl"`
	Likes     int    `json:"likes" bson:"likes"`
	Retweets  int    `json:"retweets" bson:"retweets"`
	Replies   int    `json:"replies" bson:"replies"`
	Timestamp string `json:"timestamp" bson:"timestamp"`
}
