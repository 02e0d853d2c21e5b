package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/devroster-backend/internal/data/db"
	devdomain "github.com/yungbote/devroster-backend/internal/domain/developer"
	"github.com/yungbote/devroster-backend/internal/platform/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB opens a private in-memory SQLite database with the schema migrated.
// It is closed when the test ends.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	svc, err := db.NewSQLiteService(Logger(tb), dsn)
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	tb.Cleanup(func() { _ = svc.Close() })
	if err := svc.AutoMigrateAll(); err != nil {
		tb.Fatalf("automigrate: %v", err)
	}
	return svc.DB()
}

// SeedRecord writes a developer row directly at the given position.
func SeedRecord(tb testing.TB, ctx context.Context, tx *gorm.DB, dev devdomain.Developer, position int64) *devdomain.Record {
	tb.Helper()
	rec, err := devdomain.NewRecord(dev, position)
	if err != nil {
		tb.Fatalf("build record: %v", err)
	}
	if err := tx.WithContext(ctx).Create(rec).Error; err != nil {
		tb.Fatalf("seed developer: %v", err)
	}
	return rec
}
