package service

import (
	"Folio/internal/api/dto"
	"Folio/internal/model"
	"Folio/internal/pkg/consts"
	"Folio/internal/pkg/kafka"
	"Folio/internal/pkg/metrics"
	"Folio/internal/pkg/util"
	"Folio/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strings"

	"github.com/jinzhu/copier"
)

type PostService interface {
	CreatePost(ctx context.Context, postDTO *dto.PostBaseDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, postID uint64) (*dto.PostDTO, error)
	ListPosts(ctx context.Context) ([]*dto.PostDTO, error)
	UpdatePost(ctx context.Context, postID uint64, postDTO *dto.PostUpdateDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, postID uint64) error
}

type postServiceImpl struct {
	store      repository.Store
	reconciler TagReconciler
	publisher  kafka.Publisher
}

func NewPostService(store repository.Store, reconciler TagReconciler, publisher kafka.Publisher) PostService {
	if publisher == nil {
		publisher = kafka.NopPublisher{}
	}
	return &postServiceImpl{
		store:      store,
		reconciler: reconciler,
		publisher:  publisher,
	}
}

// CreatePost 创建帖子，帖子与标签在同一事务中写入
func (s *postServiceImpl) CreatePost(ctx context.Context, postDTO *dto.PostBaseDTO) (*dto.PostDTO, error) {
	if err := util.ValidateDTO(postDTO); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(postDTO.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	post := &model.Post{
		Title:       title,
		Content:     postDTO.Content,
		Author:      postDTO.Author,
		PublishedAt: postDTO.PublishedAt.TimePtr(),
	}

	var created *model.Post
	var tagsCreated int64
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.Posts().CreatePost(ctx, post); err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		res, err := s.reconciler.ReconcileIn(ctx, tx, post.ID, postDTO.Tags)
		if err != nil {
			return err
		}
		tagsCreated = res.Created
		created, err = tx.Posts().GetPost(ctx, post.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, ErrPostNotFound
	}
	metrics.AddTagsCreated(int(tagsCreated))

	s.publish(ctx, consts.EventPostCreated, created)
	return s.toPostDTO(created)
}

// GetPost 获取单个帖子及其标签
func (s *postServiceImpl) GetPost(ctx context.Context, postID uint64) (*dto.PostDTO, error) {
	post, err := s.store.Posts().GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return s.toPostDTO(post)
}

// ListPosts 获取全部帖子，最新的在前
func (s *postServiceImpl) ListPosts(ctx context.Context) ([]*dto.PostDTO, error) {
	posts, err := s.store.Posts().ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		item, err := s.toPostDTO(post)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// UpdatePost 更新帖子；Tags 非 nil 时同步标签，空数组会清空标签
func (s *postServiceImpl) UpdatePost(ctx context.Context, postID uint64, postDTO *dto.PostUpdateDTO) (*dto.PostDTO, error) {
	fields, err := updateFields(postDTO)
	if err != nil {
		return nil, err
	}

	var updated *model.Post
	var tagsCreated int64
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		ok, err := tx.Posts().UpdatePost(ctx, postID, fields)
		if err != nil {
			return fmt.Errorf("update post: %w", err)
		}
		if !ok {
			return ErrPostNotFound
		}
		if postDTO.Tags != nil {
			res, err := s.reconciler.ReconcileIn(ctx, tx, postID, *postDTO.Tags)
			if err != nil {
				return err
			}
			tagsCreated = res.Created
		}
		updated, err = tx.Posts().GetPost(ctx, postID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrPostNotFound
	}
	metrics.AddTagsCreated(int(tagsCreated))

	s.publish(ctx, consts.EventPostUpdated, updated)
	return s.toPostDTO(updated)
}

// updateFields 只收集请求中出现的字段，null 写入 NULL；title 不允许为空
func updateFields(postDTO *dto.PostUpdateDTO) (map[string]any, error) {
	fields := make(map[string]any, 4)
	if postDTO.Title.Set {
		title := strings.TrimSpace(postDTO.Title.Value)
		if !postDTO.Title.Valid || title == "" {
			return nil, ErrTitleRequired
		}
		if err := util.ValidateVar("Title", title, "max=200"); err != nil {
			return nil, err
		}
		fields["title"] = title
	}
	if postDTO.Content.Set {
		fields["content"] = nullable(postDTO.Content)
	}
	if postDTO.Author.Set {
		if postDTO.Author.Valid {
			if err := util.ValidateVar("Author", postDTO.Author.Value, "max=200"); err != nil {
				return nil, err
			}
		}
		fields["author"] = nullable(postDTO.Author)
	}
	if postDTO.PublishedAt.Set {
		if postDTO.PublishedAt.Valid {
			fields["published_at"] = postDTO.PublishedAt.Value.Time
		} else {
			fields["published_at"] = nil
		}
	}
	return fields, nil
}

func nullable[T any](o dto.Optional[T]) any {
	if !o.Valid {
		return nil
	}
	return o.Value
}

// DeletePost 删除帖子及其标签关系，标签保留
func (s *postServiceImpl) DeletePost(ctx context.Context, postID uint64) error {
	deleted, err := s.store.Posts().DeletePost(ctx, postID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPostNotFound
	}

	s.publish(ctx, consts.EventPostDeleted, &model.Post{ID: postID})
	return nil
}

// publish 事件发送失败只记录日志，不影响已提交的请求
func (s *postServiceImpl) publish(ctx context.Context, eventType string, post *model.Post) {
	event := &kafka.Event{
		Type:   eventType,
		PostID: post.ID,
		Title:  post.Title,
	}
	for _, tag := range post.Tags {
		event.Tags = append(event.Tags, tag.Name)
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WarnContext(ctx, "publish post event failed", "type", eventType, "post_id", post.ID, "err", err)
	}
}

// toPostDTO 将 Model 转换为返回给前端的 DTO
func (s *postServiceImpl) toPostDTO(post *model.Post) (*dto.PostDTO, error) {
	out := &dto.PostDTO{}
	if err := copier.Copy(&out.PostInfoDTO, post); err != nil {
		return nil, err
	}
	tags, err := toTagDTOs(post.Tags)
	if err != nil {
		return nil, err
	}
	out.Tags = tags
	return out, nil
}

func toTagDTOs(tags []model.Tag) ([]*dto.TagDTO, error) {
	out := make([]*dto.TagDTO, 0, len(tags))
	for i := range tags {
		item := &dto.TagDTO{}
		if err := copier.Copy(item, &tags[i]); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
