package repository

import (
	"Folio/internal/model"
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepo interface {
	GetOrCreateTags(ctx context.Context, tagNames []string) ([]*model.Tag, int64, error)
	GetTagByName(ctx context.Context, name string) (*model.Tag, error)
	ListTags(ctx context.Context) ([]*model.Tag, error)
	GetTagsByPost(ctx context.Context, postID uint64) ([]*model.Tag, error)
	GetTagIDsByPost(ctx context.Context, postID uint64) ([]uint64, error)
	AttachTags(ctx context.Context, postID uint64, tagIDs []uint64) error
	DetachTags(ctx context.Context, postID uint64, tagIDs []uint64) error
	DeleteOrphanTags(ctx context.Context) (int64, error)
}

type tagRepoImpl struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepo {
	return &tagRepoImpl{
		db: db,
	}
}

// GetOrCreateTags 按名称获取标签，不存在的一并创建，返回标签及新建数量
// 并发创建同名标签时依赖唯一索引，冲突的行直接回查已存在的记录
func (s *tagRepoImpl) GetOrCreateTags(ctx context.Context, tagNames []string) ([]*model.Tag, int64, error) {
	if len(tagNames) == 0 {
		return []*model.Tag{}, 0, nil
	}

	tags := make([]*model.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		tags = append(tags, &model.Tag{Name: name})
	}

	var created int64
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&tags)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return nil, 0, result.Error
	}
	if result.Error == nil {
		created = result.RowsAffected
	}

	var existing []*model.Tag
	err := s.db.WithContext(ctx).
		Where("name IN ?", tagNames).
		Order("id asc").
		Find(&existing).Error
	if err != nil {
		return nil, 0, err
	}
	if len(existing) != len(tagNames) {
		return nil, 0, fmt.Errorf("resolve tags: expected %d rows, got %d", len(tagNames), len(existing))
	}

	return existing, created, nil
}

// GetTagByName 忽略大小写精确匹配，不存在时返回 nil
func (s *tagRepoImpl) GetTagByName(ctx context.Context, name string) (*model.Tag, error) {
	var tag model.Tag
	err := s.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		Order("id asc").
		First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

func (s *tagRepoImpl) ListTags(ctx context.Context) ([]*model.Tag, error) {
	var tags []*model.Tag
	if err := s.db.WithContext(ctx).Order("id asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetTagsByPost 帖子当前关联的标签，按创建顺序
func (s *tagRepoImpl) GetTagsByPost(ctx context.Context, postID uint64) ([]*model.Tag, error) {
	var tags []*model.Tag
	err := s.db.WithContext(ctx).
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", postID).
		Order("tags.id asc").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *tagRepoImpl) GetTagIDsByPost(ctx context.Context, postID uint64) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).
		Model(&model.PostTag{}).
		Where("post_id = ?", postID).
		Pluck("tag_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *tagRepoImpl) AttachTags(ctx context.Context, postID uint64, tagIDs []uint64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]*model.PostTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		rows = append(rows, &model.PostTag{PostID: postID, TagID: id})
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

func (s *tagRepoImpl) DetachTags(ctx context.Context, postID uint64, tagIDs []uint64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Where("post_id = ? AND tag_id IN ?", postID, tagIDs).
		Delete(&model.PostTag{}).Error
}

// DeleteOrphanTags 单条语句删除所有没有关联帖子的标签
func (s *tagRepoImpl) DeleteOrphanTags(ctx context.Context) (int64, error) {
	db := s.db.WithContext(ctx)
	linked := db.Session(&gorm.Session{NewDB: true}).
		Model(&model.PostTag{}).
		Select("1").
		Where("post_tags.tag_id = tags.id")

	result := db.Where("NOT EXISTS (?)", linked).Delete(&model.Tag{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
