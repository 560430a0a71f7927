package storage

import (
	"fmt"
	"net/http"
	"time"

	gcs "cloud.google.com/go/storage"

	"github.com/gemline/repair-service/internal/config"
)

// Signer issues time-limited signed upload URLs so clients write files to the
// bucket directly, bypassing this server for the payload.
type Signer struct {
	bucket         string
	googleAccessID string
	privateKey     []byte
	ttl            time.Duration
}

// NewSigner builds a signer from config.
func NewSigner(cfg config.StorageConfig) *Signer {
	ttl := time.Duration(cfg.URLTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Signer{
		bucket:         cfg.Bucket,
		googleAccessID: cfg.GoogleAccessID,
		privateKey:     []byte(cfg.PrivateKey),
		ttl:            ttl,
	}
}

// Configured reports whether a signing identity is available.
func (s *Signer) Configured() bool {
	return s.bucket != "" && s.googleAccessID != "" && len(s.privateKey) > 0
}

// SignedUploadURL returns a single-use V4 PUT URL for a per-customer object
// path, plus the public URL the object will have once uploaded.
func (s *Signer) SignedUploadURL(customerID, filename, contentType string) (uploadURL, publicURL string, err error) {
	if !s.Configured() {
		return "", "", fmt.Errorf("storage signer not configured")
	}

	object := fmt.Sprintf("uploads/%s/%d-%s", customerID, time.Now().UnixMilli(), filename)

	uploadURL, err = gcs.SignedURL(s.bucket, object, &gcs.SignedURLOptions{
		Scheme:         gcs.SigningSchemeV4,
		Method:         http.MethodPut,
		GoogleAccessID: s.googleAccessID,
		PrivateKey:     s.privateKey,
		Expires:        time.Now().Add(s.ttl),
		ContentType:    contentType,
	})
	if err != nil {
		return "", "", err
	}

	publicURL = fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, object)
	return uploadURL, publicURL, nil
}
