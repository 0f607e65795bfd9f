package kafka

import "time"

// Event 帖子/标签变更事件
type Event struct {
	Type         string    `json:"type"`
	PostID       uint64    `json:"postId,omitempty"`
	Title        string    `json:"title,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	DeletedCount int64     `json:"deletedCount,omitempty"`
	TraceID      string    `json:"traceId,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}
