package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/config"
	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/migrations"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/sqlitelocal"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/sqlitemem"
)

// store is an opened and migrated database.
type store struct {
	Write *sql.DB
	Read  *sql.DB
	Close func()
}

func openStore(ctx context.Context, cfg config.DBConfig, logger *slog.Logger) (*store, error) {
	var s store
	switch cfg.Mode {
	case config.DBModeMemory:
		local, err := sqlitemem.NewSQLiteMem(ctx)
		if err != nil {
			return nil, err
		}
		s = store{Write: local.Write, Read: local.Read, Close: local.Close}
	case config.DBModeLocal:
		local, err := sqlitelocal.NewSQLiteLocal(ctx, cfg.Name, cfg.Path)
		if err != nil {
			return nil, err
		}
		s = store{Write: local.WriteDB, Read: local.ReadDB, Close: func() {
			if err := local.Close(); err != nil {
				logger.Error("close database", "error", err)
			}
		}}
	default:
		return nil, fmt.Errorf("unknown db mode %q", cfg.Mode)
	}
	logger.Info("database opened", "mode", cfg.Mode, "path", cfg.Path)

	if err := migrations.Run(ctx, s.Write, logger); err != nil {
		s.Close()
		return nil, err
	}
	return &s, nil
}
