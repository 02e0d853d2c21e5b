package developer

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	types "github.com/yungbote/devroster-backend/internal/domain"
	devdomain "github.com/yungbote/devroster-backend/internal/domain/developer"
	"github.com/yungbote/devroster-backend/internal/pkg/errors"
	"github.com/yungbote/devroster-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type gormRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewGormRepo stores developers in the developer table. The schema must be
// migrated beforehand (db.AutoMigrateAll).
func NewGormRepo(db *gorm.DB, baseLog *logger.Logger) DeveloperRepo {
	return &gormRepo{db: db, log: baseLog.With("repo", "GormDeveloperRepo")}
}

func (r *gormRepo) List(ctx context.Context) ([]types.Developer, error) {
	var rows []*devdomain.Record
	if err := r.db.WithContext(ctx).
		Order("position ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]types.Developer, 0, len(rows))
	for _, row := range rows {
		d, err := row.Developer()
		if err != nil {
			return nil, fmt.Errorf("decode developer %s: %w", row.ID, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *gormRepo) GetByID(ctx context.Context, id string) (types.Developer, bool, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *gormRepo) GetByName(ctx context.Context, name string) (types.Developer, bool, error) {
	return r.first(ctx, "name = ?", name)
}

func (r *gormRepo) first(ctx context.Context, query string, arg any) (types.Developer, bool, error) {
	var row devdomain.Record
	err := r.db.WithContext(ctx).Where(query, arg).Take(&row).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return types.Developer{}, false, nil
	}
	if err != nil {
		return types.Developer{}, false, err
	}
	d, err := row.Developer()
	if err != nil {
		return types.Developer{}, false, err
	}
	return d, true, nil
}

func (r *gormRepo) Insert(ctx context.Context, dev types.Developer) error {
	if dev.ID == "" {
		return fmt.Errorf("insert developer: %w: empty id", errors.ErrInvalidArgument)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPos sql.NullInt64
		if err := tx.Model(&devdomain.Record{}).
			Select("MAX(position)").
			Row().
			Scan(&maxPos); err != nil {
			return err
		}
		next := int64(1)
		if maxPos.Valid {
			next = maxPos.Int64 + 1
		}
		row, err := devdomain.NewRecord(dev, next)
		if err != nil {
			return err
		}
		return tx.Create(row).Error
	})
}

func (r *gormRepo) Replace(ctx context.Context, dev types.Developer) error {
	raw, err := devdomain.FrameworksJSON(dev.Frameworks)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).
		Model(&devdomain.Record{}).
		Where("id = ?", dev.ID).
		Updates(map[string]any{
			"name":       dev.Name,
			"is_junior":  dev.IsJunior,
			"frameworks": raw,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("replace developer %s: %w", dev.ID, errors.ErrNotFound)
	}
	return nil
}

func (r *gormRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&devdomain.Record{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete developer %s: %w", id, errors.ErrNotFound)
	}
	return nil
}

func (r *gormRepo) Count(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&devdomain.Record{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}
