package main

import (
	"context"
	"fmt"

	"github.com/dafibh/pfd/pfd-backend/internal/config"
	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/repository/file"
	"github.com/dafibh/pfd/pfd-backend/internal/repository/memory"
	"github.com/dafibh/pfd/pfd-backend/internal/repository/postgres"
	"github.com/dafibh/pfd/pfd-backend/internal/repository/sqlite"
	"github.com/dafibh/pfd/pfd-backend/internal/repository/storage"
	"github.com/dafibh/pfd/pfd-backend/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// persistence bundles the blob backend, the optional backup archive and the
// resources to release on shutdown
type persistence struct {
	blob    store.BlobStore
	archive domain.BackupArchive
	closers []func()
}

func (p *persistence) Close() {
	for i := len(p.closers) - 1; i >= 0; i-- {
		p.closers[i]()
	}
}

// openPersistence builds the blob store selected by STORE_BACKEND and the
// archive selected by BACKUP_SINK. Cloud clients are shared when the backend
// and the sink use the same provider.
func openPersistence(ctx context.Context, cfg *config.Config) (*persistence, error) {
	p := &persistence{}
	var s3Repo *storage.S3BlobRepository
	var gcsRepo *storage.GCSBlobRepository

	switch cfg.StoreBackend {
	case config.BackendMemory:
		p.blob = memory.NewBlobRepository()
	case config.BackendFile:
		repo, err := file.NewBlobRepository(cfg.StoreFile)
		if err != nil {
			return nil, err
		}
		p.blob = repo
	case config.BackendSQLite:
		repo, err := sqlite.NewBlobRepository(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		p.closers = append(p.closers, func() { _ = repo.Close() })
		p.blob = repo
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		p.closers = append(p.closers, pool.Close)
		if err := pool.Ping(ctx); err != nil {
			p.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}
		repo := postgres.NewBlobRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			p.Close()
			return nil, err
		}
		log.Info().Msg("Connected to database")
		p.blob = repo
	case config.BackendS3:
		repo, err := storage.NewS3BlobRepository(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		s3Repo = repo
		p.blob = repo
	case config.BackendGCS:
		repo, err := storage.NewGCSBlobRepository(ctx, cfg.GCS)
		if err != nil {
			return nil, err
		}
		p.closers = append(p.closers, func() { _ = repo.Close() })
		gcsRepo = repo
		p.blob = repo
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	switch cfg.BackupSink {
	case config.SinkS3:
		if s3Repo == nil {
			repo, err := storage.NewS3BlobRepository(ctx, cfg.S3)
			if err != nil {
				p.Close()
				return nil, fmt.Errorf("backup sink: %w", err)
			}
			s3Repo = repo
		}
		p.archive = s3Repo
	case config.SinkGCS:
		if gcsRepo == nil {
			repo, err := storage.NewGCSBlobRepository(ctx, cfg.GCS)
			if err != nil {
				p.Close()
				return nil, fmt.Errorf("backup sink: %w", err)
			}
			p.closers = append(p.closers, func() { _ = repo.Close() })
			gcsRepo = repo
		}
		p.archive = gcsRepo
	}

	log.Info().
		Str("backend", cfg.StoreBackend).
		Str("backup_sink", cfg.BackupSink).
		Msg("Persistence ready")

	return p, nil
}
