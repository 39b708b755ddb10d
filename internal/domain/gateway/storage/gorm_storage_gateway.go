package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-todo/internal/domain/model"
)

// kvEntry is a row of the kv_store table
type kvEntry struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     string `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time
}

func (kvEntry) TableName() string {
	return "kv_store"
}

type GormGateway struct {
	DB *gorm.DB
}

var _ Gateway = (*GormGateway)(nil)

func NewGormGateway(db *gorm.DB) *GormGateway {
	return &GormGateway{DB: db}
}

// Migrate creates or updates the kv_store table
func (gateway *GormGateway) Migrate(ctx context.Context) error {
	return gateway.DB.WithContext(ctx).AutoMigrate(&kvEntry{})
}

func (gateway *GormGateway) ReadString(ctx context.Context, key string) (string, bool, error) {
	var entry kvEntry
	err := gateway.DB.WithContext(ctx).Where("key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (gateway *GormGateway) WriteString(ctx context.Context, key string, value string) error {
	entry := kvEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return gateway.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (gateway *GormGateway) Delete(ctx context.Context, key string) error {
	return gateway.DB.WithContext(ctx).Where("key = ?", key).Delete(&kvEntry{}).Error
}

func (gateway *GormGateway) Health() model.ComponentHealthStatus {
	sqlDB, err := gateway.DB.DB()
	if err != nil {
		return model.ComponentDown(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return model.ComponentDown(err)
	}

	return model.ComponentUp(map[string]string{"backend": "gorm"})
}
