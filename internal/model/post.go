package model

import (
	"time"
)

type Post struct {
	ID          uint64     `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Content     *string    `gorm:"type:text" json:"content"`
	Author      *string    `gorm:"type:varchar(200)" json:"author"`
	PublishedAt *time.Time `gorm:"index:idx_published_at" json:"publishedAt"`
	CreatedAt   time.Time  `gorm:"index:idx_created_at" json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// 关联关系
	Tags []Tag `gorm:"many2many:post_tags;constraint:OnDelete:CASCADE" json:"tags"`
}

func (Post) TableName() string {
	return "posts"
}
