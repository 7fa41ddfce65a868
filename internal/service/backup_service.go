package service

import (
	"context"
	"time"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/store"
	"github.com/dafibh/pfd/pfd-backend/internal/websocket"
	"github.com/rs/zerolog"
)

// BackupURLExpiry is how long an archived backup download link stays valid
const BackupURLExpiry = 15 * time.Minute

// BackupService exports, imports and resets the whole document
type BackupService struct {
	eventSource
	store   *store.Store
	clock   domain.Clock
	archive domain.BackupArchive
	logger  zerolog.Logger
}

// NewBackupService creates a new BackupService. archive may be nil.
func NewBackupService(st *store.Store, clock domain.Clock, archive domain.BackupArchive, logger zerolog.Logger) *BackupService {
	return &BackupService{
		store:   st,
		clock:   clock,
		archive: archive,
		logger:  logger.With().Str("component", "backup_service").Logger(),
	}
}

// BackupFilename returns the export file name for a backup taken at t
func BackupFilename(t time.Time) string {
	return domain.BackupFilePrefix + t.UTC().Format(time.RFC3339) + ".json"
}

// Export serializes the full document. When an archive is configured the
// export is also uploaded there; an upload failure is logged and the export
// is still returned.
func (s *BackupService) Export(ctx context.Context) (*domain.Backup, error) {
	data, err := s.store.Export()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	backup := &domain.Backup{
		Filename:  BackupFilename(now),
		CreatedAt: now,
		Data:      data,
	}

	if s.archive != nil {
		location, err := s.archive.Archive(ctx, backup.Filename, data)
		if err != nil {
			s.logger.Warn().Err(err).Str("filename", backup.Filename).Msg("Failed to archive backup")
			return backup, nil
		}
		backup.Location = location

		url, err := s.archive.URL(ctx, location, BackupURLExpiry)
		if err != nil {
			s.logger.Warn().Err(err).Str("location", location).Msg("Failed to create backup download link")
		} else {
			backup.URL = url
		}
		s.logger.Info().Str("location", location).Msg("Backup archived")
	}

	return backup, nil
}

// Import replaces the document with data merged over defaults. Data that is
// not a JSON object fails with domain.ErrInvalidFormat and changes nothing.
func (s *BackupService) Import(ctx context.Context, data []byte) (*domain.Document, error) {
	doc, err := s.store.ImportMerge(ctx, data)
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.DocumentImported(map[string]int{
		"accounts":     len(doc.Accounts),
		"transactions": len(doc.Transactions),
		"goals":        len(doc.Goals),
		"budgets":      len(doc.Budgets),
		"bills":        len(doc.Bills),
	}))
	return doc, nil
}

// Reset clears all data back to the empty document
func (s *BackupService) Reset(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return err
	}
	s.publishEvent(websocket.DocumentReset())
	return nil
}
