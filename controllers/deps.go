package controllers

import (
	"github.com/sirupsen/logrus"

	"github.com/Nwakakukaks/mont/handoff"
	"github.com/Nwakakukaks/mont/store"
	"github.com/Nwakakukaks/mont/uploads"
)

// Deps are the collaborators the handlers run against. main wires the real
// Mongo/Redis/Cloudinary set; tests wire the in-memory ones.
type Deps struct {
	Store    store.Store
	Slot     handoff.Slot
	Uploader uploads.Uploader

	JWTKey       []byte
	OAuthURL     string
	OAuthProfile string
	AuthToken    string

	Log *logrus.Entry
}

var deps Deps

// Use installs the handler dependencies. Call once before serving.
func Use(d Deps) {
	if d.Log == nil {
		d.Log = logrus.NewEntry(logrus.StandardLogger())
	}
	deps = d
}
