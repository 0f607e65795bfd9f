package repository

import (
	"Folio/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	ListPosts(ctx context.Context) ([]*model.Post, error)
	GetPostsByTagID(ctx context.Context, tagID uint64) ([]*model.Post, error)
	UpdatePost(ctx context.Context, id uint64, fields map[string]any) (bool, error)
	TouchPost(ctx context.Context, id uint64) (bool, error)
	DeletePost(ctx context.Context, id uint64) (bool, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

func preloadTags(db *gorm.DB) *gorm.DB {
	return db.Preload("Tags", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("tags.id ASC")
	})
}

// CreatePost 只写入 posts 行，标签关系由 TagRepo 维护
func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Omit("Tags").Create(post).Error
}

// GetPost 获取帖子及其标签，不存在时返回 nil
func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := preloadTags(s.db.WithContext(ctx)).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// ListPosts 获取全部帖子及其标签，按创建时间倒序
func (s *PostRepoImpl) ListPosts(ctx context.Context) ([]*model.Post, error) {
	var posts []*model.Post
	err := preloadTags(s.db.WithContext(ctx)).
		Order("created_at desc").
		Order("id desc").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByTagID 获取某标签下的帖子，不加载标签
func (s *PostRepoImpl) GetPostsByTagID(ctx context.Context, tagID uint64) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tagID).
		Order("posts.created_at desc").
		Order("posts.id desc").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost 更新标量字段，返回帖子是否存在
func (s *PostRepoImpl) UpdatePost(ctx context.Context, id uint64, fields map[string]any) (bool, error) {
	if len(fields) == 0 {
		return s.TouchPost(ctx, id)
	}
	result := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}
	// MySQL 对未变化的行返回 0，需要再确认一次
	return s.exists(ctx, id)
}

// TouchPost 刷新 updated_at，在事务中同时获得该行的写锁
func (s *PostRepoImpl) TouchPost(ctx context.Context, id uint64) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("updated_at", time.Now())
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}
	return s.exists(ctx, id)
}

func (s *PostRepoImpl) exists(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeletePost 删除帖子及其 post_tags 关系，不删除标签本身
func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) (bool, error) {
	var deleted bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.PostTag{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
