package controllers

import (
	"io"
	"net/http"

	u "github.com/Nwakakukaks/mont/utils"
)

const maxUploadSize = 10 << 20

// Upload proxies an image to the asset host and returns its canonical URL.
// The editor shows its own local preview while this is in flight, so a
// failure here degrades the session instead of breaking it.
var Upload = func(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		u.Respond(w, u.Message(false, err.Error()), 400)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		u.Respond(w, u.Message(false, err.Error()), 400)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		u.Respond(w, u.Message(false, err.Error()), 400)
		return
	}

	url, err := deps.Uploader.Upload(r.Context(), header.Filename, data)
	if err != nil {
		deps.Log.WithError(err).Warn("asset upload failed")
		u.Respond(w, u.Message(false, "Upload failed"), 502)
		return
	}

	u.Respond(w, map[string]interface{}{"url": url}, 200)
}
