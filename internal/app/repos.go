package app

import (
	"fmt"

	httpH "github.com/yungbote/devroster-backend/internal/http/handlers"

	"github.com/yungbote/devroster-backend/internal/data/db"
	devrepo "github.com/yungbote/devroster-backend/internal/data/repos/developer"
	"github.com/yungbote/devroster-backend/internal/platform/logger"
)

type Repos struct {
	Developer devrepo.DeveloperRepo

	sqlite *db.SQLiteService
}

func wireRepos(log *logger.Logger, cfg Config) (Repos, error) {
	log.Info("Wiring repos...", "store", cfg.Store)
	if cfg.Store != StoreSQLite {
		return Repos{Developer: devrepo.NewMemoryRepo(log)}, nil
	}

	sqlite, err := db.NewSQLiteService(log, cfg.SQLiteDSN)
	if err != nil {
		return Repos{}, fmt.Errorf("init sqlite: %w", err)
	}
	if err := sqlite.AutoMigrateAll(); err != nil {
		_ = sqlite.Close()
		return Repos{}, fmt.Errorf("sqlite automigrate: %w", err)
	}
	return Repos{
		Developer: devrepo.NewGormRepo(sqlite.DB(), log),
		sqlite:    sqlite,
	}, nil
}

// Probes lists the store checks served by /healthcheck.
func (r Repos) Probes() []httpH.HealthProbe {
	if r.sqlite == nil {
		return nil
	}
	return []httpH.HealthProbe{{Name: "sqlite", Check: r.sqlite.Ping}}
}

func (r Repos) Close() error {
	if r.sqlite == nil {
		return nil
	}
	return r.sqlite.Close()
}
