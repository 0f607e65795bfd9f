package service

import (
	"Folio/internal/pkg/metrics"
	"Folio/internal/repository"
	"context"
	"fmt"
)

// OrphanSweeper 删除没有任何帖子引用的标签
// 删除是单条 NOT EXISTS 语句，与并发新增关联之间没有竞争窗口
type OrphanSweeper struct {
	store repository.Store
}

func NewOrphanSweeper(store repository.Store) *OrphanSweeper {
	return &OrphanSweeper{store: store}
}

func (s *OrphanSweeper) Sweep(ctx context.Context) (int64, error) {
	n, err := s.store.Tags().DeleteOrphanTags(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete orphan tags: %w", err)
	}
	metrics.AddOrphanTagsDeleted(n)
	return n, nil
}
