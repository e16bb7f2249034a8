// Package store 使用 Gorm + SQLite 持久化订单回执（append-only）。
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"saka/internal/contract"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store 是回执日志的唯一写入方。order_id 唯一，重复写入是错误。
type Store struct {
	db *gorm.DB
}

func New(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("store: database path cannot be empty")
	}
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&cache=shared", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&tradeModel{}); err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite + WAL: allow a small amount of parallelism for concurrent HTTP reads
	// while keeping lock contention low.
	sqlDB.SetMaxOpenConns(2)
	sqlDB.SetMaxIdleConns(2)
	return &Store{db: db}, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Insert 写入一条回执。order_id 冲突返回错误，绝不覆盖已有记录。
func (s *Store) Insert(ctx context.Context, r contract.Receipt) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store is not initialized")
	}
	if strings.TrimSpace(r.OrderID) == "" {
		return fmt.Errorf("receipt order_id cannot be empty")
	}
	m := newTradeModel(r)
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return fmt.Errorf("duplicate receipt order_id=%s: %w", r.OrderID, err)
		}
		return err
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "constraint failed")
}

// Recent 返回最近的 limit 条回执（按写入倒序）。
func (s *Store) Recent(ctx context.Context, limit int) ([]contract.Receipt, error) {
	if limit <= 0 {
		limit = 50
	}
	var models []tradeModel
	if err := s.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]contract.Receipt, 0, len(models))
	for _, m := range models {
		out = append(out, tradeModelToReceipt(m))
	}
	return out, nil
}

// ListByAsset 返回某资产的全部回执（按时间正序）。
func (s *Store) ListByAsset(ctx context.Context, asset string) ([]contract.Receipt, error) {
	asset = strings.TrimSpace(asset)
	if asset == "" {
		return nil, fmt.Errorf("asset is required")
	}
	var models []tradeModel
	if err := s.db.WithContext(ctx).Where("asset = ?", asset).Order("timestamp ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]contract.Receipt, 0, len(models))
	for _, m := range models {
		out = append(out, tradeModelToReceipt(m))
	}
	return out, nil
}
