package service

import (
	"Folio/internal/model"
	"Folio/internal/pkg/metrics"
	"Folio/internal/repository"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// NormalizeTagName 去除首尾空白并转为小写
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeTagNames 规范化标签名并去重，保持首次出现的顺序
// 空白标签直接跳过，超长标签返回 ErrTagNameTooLong
func NormalizeTagNames(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, raw := range names {
		name := NormalizeTagName(raw)
		if name == "" {
			continue
		}
		if utf8.RuneCountInString(name) > model.TagNameMaxLen {
			return nil, fmt.Errorf("%w: %q", ErrTagNameTooLong, name)
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

// DiffTagIDs 计算需要解除和新增的关联
func DiffTagIDs(current, wanted []uint64) (toDetach, toAttach []uint64) {
	currentSet := make(map[uint64]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}
	wantedSet := make(map[uint64]struct{}, len(wanted))
	for _, id := range wanted {
		wantedSet[id] = struct{}{}
		if _, ok := currentSet[id]; !ok {
			toAttach = append(toAttach, id)
		}
	}
	for _, id := range current {
		if _, ok := wantedSet[id]; !ok {
			toDetach = append(toDetach, id)
		}
	}
	return toDetach, toAttach
}

// ReconcileResult Created 为本次新建的标签数，提交后才计入指标
type ReconcileResult struct {
	Tags    []*model.Tag
	Created int64
}

// TagReconciler 将帖子的标签集合调整为给定的名称列表
type TagReconciler interface {
	// Reconcile 在独立事务中执行
	Reconcile(ctx context.Context, postID uint64, tagNames []string) (*ReconcileResult, error)
	// ReconcileIn 在调用方的事务中执行，不记录指标
	ReconcileIn(ctx context.Context, tx repository.Store, postID uint64, tagNames []string) (*ReconcileResult, error)
}

type tagReconcilerImpl struct {
	store repository.Store
}

func NewTagReconciler(store repository.Store) TagReconciler {
	return &tagReconcilerImpl{store: store}
}

func (s *tagReconcilerImpl) Reconcile(ctx context.Context, postID uint64, tagNames []string) (*ReconcileResult, error) {
	var res *ReconcileResult
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		res, err = s.ReconcileIn(ctx, tx, postID, tagNames)
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.AddTagsCreated(int(res.Created))
	return res, nil
}

func (s *tagReconcilerImpl) ReconcileIn(ctx context.Context, tx repository.Store, postID uint64, tagNames []string) (*ReconcileResult, error) {
	names, err := NormalizeTagNames(tagNames)
	if err != nil {
		return nil, err
	}

	// 先写帖子行，同一帖子上的并发调整在此串行化
	ok, err := tx.Posts().TouchPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("lock post %d: %w", postID, err)
	}
	if !ok {
		return nil, ErrPostNotFound
	}

	tags, created, err := tx.Tags().GetOrCreateTags(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}

	current, err := tx.Tags().GetTagIDsByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("load post tags: %w", err)
	}

	wanted := make([]uint64, 0, len(tags))
	for _, tag := range tags {
		wanted = append(wanted, tag.ID)
	}
	toDetach, toAttach := DiffTagIDs(current, wanted)

	if err = tx.Tags().DetachTags(ctx, postID, toDetach); err != nil {
		return nil, fmt.Errorf("detach tags: %w", err)
	}
	if err = tx.Tags().AttachTags(ctx, postID, toAttach); err != nil {
		return nil, fmt.Errorf("attach tags: %w", err)
	}

	return &ReconcileResult{Tags: tags, Created: created}, nil
}
