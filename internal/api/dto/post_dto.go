package dto

import "time"

// PostBaseDTO 帖子 - 新增
type PostBaseDTO struct {
	Title       string     `json:"title" binding:"required" validate:"min=1,max=200"`
	Content     *string    `json:"content"`
	Author      *string    `json:"author" validate:"omitempty,max=200"`
	PublishedAt *Timestamp `json:"publishedAt"`
	Tags        []string   `json:"tags"`
}

// PostUpdateDTO 帖子 - 修改，未出现的字段不修改，显式 null 会清空该列
// publishedAt 为 null 表示撤回为草稿；Tags 为 nil 表示不调整标签，空数组表示清空标签
type PostUpdateDTO struct {
	Title       Optional[string]    `json:"title"`
	Content     Optional[string]    `json:"content"`
	Author      Optional[string]    `json:"author"`
	PublishedAt Optional[Timestamp] `json:"publishedAt"`
	Tags        *[]string           `json:"tags"`
}

// PostInfoDTO 帖子基础信息
type PostInfoDTO struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	Content     *string    `json:"content"`
	Author      *string    `json:"author"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// PostDTO 帖子及其标签
type PostDTO struct {
	PostInfoDTO
	Tags []*TagDTO `json:"tags"`
}
