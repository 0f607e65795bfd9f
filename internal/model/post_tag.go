package model

import "time"

// PostTag posts 与 tags 的关联表，复合主键保证同一对只出现一次
type PostTag struct {
	PostID    uint64    `gorm:"primaryKey"`
	TagID     uint64    `gorm:"primaryKey;index:idx_post_tags_tag_id"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PostTag) TableName() string {
	return "post_tags"
}
