package dto

import "time"

type TagDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TagCleanupDTO 清理孤立标签结果
type TagCleanupDTO struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}
