package db

import (
	"github.com/yungbote/devroster-backend/internal/domain/developer"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&developer.Record{},
	)
}
