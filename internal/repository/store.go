package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store 聚合各仓储，并提供事务范围内的同构实例
type Store interface {
	Posts() PostRepo
	Tags() TagRepo
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type storeImpl struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &storeImpl{db: db}
}

func (s *storeImpl) Posts() PostRepo {
	return NewPostRepository(s.db)
}

func (s *storeImpl) Tags() TagRepo {
	return NewTagRepository(s.db)
}

// Transaction fn 内通过 tx 访问的所有仓储共享同一个事务
func (s *storeImpl) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&storeImpl{db: tx})
	})
}
