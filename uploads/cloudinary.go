package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"
)

// Cloudinary uploads images through the unsigned upload endpoint. The upload
// preset stands in for credentials; the response carries the canonical URL.
type Cloudinary struct {
	CloudName    string
	UploadPreset string
	Client       *http.Client

	// baseURL is overridable in tests.
	baseURL string
}

func NewCloudinary(cloudName, uploadPreset string) *Cloudinary {
	return &Cloudinary{
		CloudName:    cloudName,
		UploadPreset: uploadPreset,
		Client:       &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
}

func (c *Cloudinary) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	if _, err = part.Write(data); err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	writer.WriteField("upload_preset", c.UploadPreset)
	writer.WriteField("cloud_name", c.CloudName)
	if err = writer.Close(); err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}

	base := c.baseURL
	if base == "" {
		base = "https://api.cloudinary.com/v1_1"
	}
	url := fmt.Sprintf("%s/%s/image/upload", base, c.CloudName)
	req, err := http.NewRequestWithContext(ctx, "POST", url, body)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("upload: asset host returned %d", resp.StatusCode)
	}

	result := &uploadResponse{}
	if err = json.NewDecoder(resp.Body).Decode(result); err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	if result.SecureURL != "" {
		return result.SecureURL, nil
	}
	return result.URL, nil
}
