package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository is the CRUD surface shared by every entity repository.
type Repository[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	// GetByID returns (nil, nil) when no row has the given id.
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, row *T) (*T, error)
	Delete(ctx context.Context, row *T) (*T, error)
	// Edit overlays row onto the stored row with the same id and returns the
	// merged result, or (nil, nil) when no such row exists.
	Edit(ctx context.Context, row *T) (*T, error)
}

// table implements Repository on top of gorm for one model type.
type table[T any] struct {
	db       *gorm.DB
	name     string
	preloads []string
	id       func(*T) int64
	overlay  func(dst, src *T)
}

func (t table[T]) query(ctx context.Context) *gorm.DB {
	q := t.db.WithContext(ctx)
	for _, p := range t.preloads {
		q = q.Preload(p)
	}
	return q
}

func (t table[T]) GetAll(ctx context.Context) ([]T, error) {
	rows := []T{}
	if err := t.query(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	return rows, nil
}

func (t table[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	var row T
	err := t.query(ctx).First(&row, id).Error
	switch {
	case err == nil:
		return &row, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("get %s %d: %w", t.name, id, err)
	}
}

func (t table[T]) Create(ctx context.Context, row *T) (*T, error) {
	if err := t.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("create %s: %w", t.name, err)
	}
	return row, nil
}

func (t table[T]) Delete(ctx context.Context, row *T) (*T, error) {
	if err := t.db.WithContext(ctx).Delete(new(T), t.id(row)).Error; err != nil {
		return nil, fmt.Errorf("delete %s %d: %w", t.name, t.id(row), err)
	}
	return row, nil
}

func (t table[T]) Edit(ctx context.Context, row *T) (*T, error) {
	id := t.id(row)
	var current T
	err := t.db.WithContext(ctx).First(&current, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s %d: %w", t.name, id, err)
	}
	t.overlay(&current, row)
	if err := t.db.WithContext(ctx).Save(&current).Error; err != nil {
		return nil, fmt.Errorf("save %s %d: %w", t.name, id, err)
	}
	merged, err := t.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if merged == nil {
		return &current, nil
	}
	return merged, nil
}

// countWhere counts rows of T whose column equals id.
func (t table[T]) countWhere(ctx context.Context, column string, id int64) (int64, error) {
	var n int64
	if err := t.db.WithContext(ctx).Model(new(T)).Where(column+" = ?", id).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s by %s: %w", t.name, column, err)
	}
	return n, nil
}
