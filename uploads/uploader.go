// Package uploads talks to the remote asset host and builds the local
// previews shown while an upload is still in flight.
package uploads

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
)

// Uploader pushes a binary to the asset host and returns its canonical URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// PreviewDataURL encodes the binary as a data URL, the session-local stand-in
// displayed until the canonical URL arrives.
func PreviewDataURL(data []byte) string {
	contentType := http.DetectContentType(data)
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
}
