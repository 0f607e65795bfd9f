package service

import (
	"Folio/internal/api/dto"
	"Folio/internal/model"
	"Folio/internal/pkg/consts"
	"Folio/internal/pkg/kafka"
	"Folio/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strings"

	"github.com/jinzhu/copier"
)

type TagService interface {
	ListTags(ctx context.Context) ([]*dto.TagDTO, error)
	GetPostsByTag(ctx context.Context, tagName string) ([]*dto.PostInfoDTO, error)
	CleanupOrphanTags(ctx context.Context) (*dto.TagCleanupDTO, error)
}

type tagServiceImpl struct {
	store     repository.Store
	sweeper   *OrphanSweeper
	publisher kafka.Publisher
}

func NewTagService(store repository.Store, sweeper *OrphanSweeper, publisher kafka.Publisher) TagService {
	if publisher == nil {
		publisher = kafka.NopPublisher{}
	}
	return &tagServiceImpl{
		store:     store,
		sweeper:   sweeper,
		publisher: publisher,
	}
}

// ListTags 获取全部标签
func (s *tagServiceImpl) ListTags(ctx context.Context) ([]*dto.TagDTO, error) {
	tags, err := s.store.Tags().ListTags(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TagDTO, 0, len(tags))
	for _, tag := range tags {
		item := &dto.TagDTO{}
		if err = copier.Copy(item, tag); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// GetPostsByTag 按标签名（忽略大小写）获取帖子，帖子不带标签
func (s *tagServiceImpl) GetPostsByTag(ctx context.Context, tagName string) ([]*dto.PostInfoDTO, error) {
	name := strings.TrimSpace(tagName)
	if name == "" {
		return nil, ErrTagNotFound
	}

	tag, err := s.store.Tags().GetTagByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrTagNotFound
	}

	posts, err := s.store.Posts().GetPostsByTagID(ctx, tag.ID)
	if err != nil {
		return nil, err
	}
	return toPostInfoDTOs(posts)
}

// CleanupOrphanTags 清理没有关联帖子的标签
func (s *tagServiceImpl) CleanupOrphanTags(ctx context.Context) (*dto.TagCleanupDTO, error) {
	n, err := s.sweeper.Sweep(ctx)
	if err != nil {
		return nil, err
	}

	if n > 0 {
		if err = s.publisher.Publish(ctx, &kafka.Event{Type: consts.EventTagsCleaned, DeletedCount: n}); err != nil {
			log.WarnContext(ctx, "publish tag cleanup event failed", "deleted", n, "err", err)
		}
	}

	return &dto.TagCleanupDTO{
		Message:      fmt.Sprintf("Deleted %d orphaned tag(s)", n),
		DeletedCount: n,
	}, nil
}

func toPostInfoDTOs(posts []*model.Post) ([]*dto.PostInfoDTO, error) {
	out := make([]*dto.PostInfoDTO, 0, len(posts))
	for _, post := range posts {
		item := &dto.PostInfoDTO{}
		if err := copier.Copy(item, post); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
