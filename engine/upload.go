package engine

import (
	"context"
	"net/http"

	"github.com/Nwakakukaks/mont/models"
	"github.com/Nwakakukaks/mont/uploads"
)

// UploadLogo runs the two-step pipeline for the logo slot: a synchronous
// local preview write, then an asynchronous canonical-URL write once the
// asset host responds.
func (e *Engine) UploadLogo(ctx context.Context, filename string, data []byte) {
	e.uploadDesignAsset(ctx, "logo", filename, data)
}

// UploadBackground runs the pipeline for the background slot.
func (e *Engine) UploadBackground(ctx context.Context, filename string, data []byte) {
	e.uploadDesignAsset(ctx, "background", filename, data)
}

func (e *Engine) uploadDesignAsset(ctx context.Context, key, filename string, data []byte) {
	handle := &models.FileHandle{
		Name:        filename,
		Size:        int64(len(data)),
		ContentType: http.DetectContentType(data),
	}

	// The preview is visible before any network round-trip completes.
	preview := uploads.PreviewDataURL(data)
	if _, err := e.UpdateDesign(Partial{key: models.ImageAsset{RawFile: handle, Preview: &preview}}); err != nil {
		e.log.WithError(err).Error("writing local preview")
		return
	}

	if e.uploader == nil {
		return
	}

	e.uploadsWG.Add(1)
	go func() {
		defer e.uploadsWG.Done()

		// The session outlives the request that triggered the upload.
		url, err := e.uploader.Upload(context.WithoutCancel(ctx), filename, data)
		if err != nil {
			// Degraded but usable: the local preview stays in place.
			e.log.WithError(err).WithField("slot", key).Warn("upload failed, keeping local preview")
			return
		}

		// Replacing the whole asset object carries rawFile forward; a bare
		// {previewUrl} patch would drop it.
		if _, err := e.UpdateDesign(Partial{key: models.ImageAsset{RawFile: handle, Preview: &url}}); err != nil {
			e.log.WithError(err).Error("writing canonical url")
		}
	}()
}

// UploadPhoto runs the pipeline for the respondent photo. Its committed value
// is a bare URL in customerInputs: the local preview while the upload is
// pending, the canonical URL once it resolves.
func (e *Engine) UploadPhoto(ctx context.Context, filename string, data []byte) {
	preview := uploads.PreviewDataURL(data)
	if _, err := e.UpdateCustomerInputs(Partial{"photo": preview}); err != nil {
		e.log.WithError(err).Error("writing local photo preview")
		return
	}

	if e.uploader == nil {
		return
	}

	e.uploadsWG.Add(1)
	go func() {
		defer e.uploadsWG.Done()

		url, err := e.uploader.Upload(context.WithoutCancel(ctx), filename, data)
		if err != nil {
			e.log.WithError(err).Warn("photo upload failed, keeping local preview")
			return
		}

		if _, err := e.UpdateCustomerInputs(Partial{"photo": url}); err != nil {
			e.log.WithError(err).Error("writing canonical photo url")
		}
	}()
}

// Wait blocks until every in-flight upload has settled. Used by tests and by
// graceful shutdown; uploads are otherwise fire-and-forget.
func (e *Engine) Wait() {
	e.uploadsWG.Wait()
}
