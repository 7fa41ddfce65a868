package domain

import (
	"context"
	"time"
)

// BackupFilePrefix starts every exported backup file name
const BackupFilePrefix = "pfd-backup-"

// Backup describes an exported document
type Backup struct {
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"createdAt"`
	Location  string    `json:"location,omitempty"`
	URL       string    `json:"url,omitempty"`
	Data      []byte    `json:"-"`
}

// BackupArchive stores exported backups outside the primary blob store
type BackupArchive interface {
	// Archive stores data under name and returns its location
	Archive(ctx context.Context, name string, data []byte) (string, error)
	// URL returns a time-limited download link for an archived backup
	URL(ctx context.Context, location string, expiry time.Duration) (string, error)
}
