package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostUpdateDTOTracksPresence(t *testing.T) {
	var req PostUpdateDTO
	require.NoError(t, json.Unmarshal([]byte(`{"author":null,"content":"body","publishedAt":"2024-01-01"}`), &req))

	assert.False(t, req.Title.Set)
	assert.True(t, req.Author.Set)
	assert.False(t, req.Author.Valid)
	assert.Nil(t, req.Author.Ptr())
	assert.Equal(t, "body", *req.Content.Ptr())
	assert.True(t, req.PublishedAt.Valid)
	assert.True(t, req.PublishedAt.Value.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, req.Tags)
}

func TestParseTimestamp(t *testing.T) {
	for _, in := range []string{"2024-01-01", "2024-01-01T10:00:00Z", "2024-01-01T10:00:00.5+08:00", "2024-01-01 10:00:00"} {
		_, err := ParseTimestamp(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseTimestamp("01/02/2024")
	assert.Error(t, err)
}

func TestTimestampNilPtr(t *testing.T) {
	var ts *Timestamp
	assert.Nil(t, ts.TimePtr())
}
