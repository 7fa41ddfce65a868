package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	cfg "github.com/dafibh/pfd/pfd-backend/internal/config"
	"google.golang.org/api/option"
)

// GCSBlobRepository stores blobs and backup archives in a Cloud Storage bucket
type GCSBlobRepository struct {
	client *gcs.Client
	bucket string
	prefix string
}

// NewGCSBlobRepository creates a Cloud Storage client. Without a credentials
// file, Application Default Credentials are used.
func NewGCSBlobRepository(ctx context.Context, gcsCfg cfg.GCSConfig) (*GCSBlobRepository, error) {
	var opts []option.ClientOption
	if gcsCfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(gcsCfg.CredentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &GCSBlobRepository{
		client: client,
		bucket: gcsCfg.Bucket,
		prefix: gcsCfg.Prefix,
	}, nil
}

// Close releases the underlying client
func (r *GCSBlobRepository) Close() error {
	return r.client.Close()
}

// Get reads the blob stored under key
func (r *GCSBlobRepository) Get(ctx context.Context, key string) (string, bool, error) {
	rc, err := r.client.Bucket(r.bucket).Object(path.Join(r.prefix, objectName(key))).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("open GCS object reader: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", false, fmt.Errorf("read GCS object: %w", err)
	}
	return string(data), true, nil
}

// Set writes text under key
func (r *GCSBlobRepository) Set(ctx context.Context, key, text string) error {
	return r.write(ctx, path.Join(r.prefix, objectName(key)), []byte(text))
}

// Archive uploads an exported backup and returns its gs:// URI
func (r *GCSBlobRepository) Archive(ctx context.Context, name string, data []byte) (string, error) {
	object := path.Join(r.prefix, "backups", name)
	if err := r.write(ctx, object, data); err != nil {
		return "", err
	}
	return fmt.Sprintf("gs://%s/%s", r.bucket, object), nil
}

// URL returns a signed download URL for an archived backup
func (r *GCSBlobRepository) URL(ctx context.Context, location string, expiry time.Duration) (string, error) {
	object := strings.TrimPrefix(location, "gs://"+r.bucket+"/")
	url, err := r.client.Bucket(r.bucket).SignedURL(object, &gcs.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(expiry),
		Scheme:  gcs.SigningSchemeV4,
	})
	if err != nil {
		return "", fmt.Errorf("sign GCS url: %w", err)
	}
	return url, nil
}

func (r *GCSBlobRepository) write(ctx context.Context, object string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := r.client.Bucket(r.bucket).Object(object).NewWriter(ctx)
	w.ContentType = jsonContentType

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("write GCS object: %w", err)
	}
	// Close finalizes the upload
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize upload: %w", err)
	}
	return nil
}
