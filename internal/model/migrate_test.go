package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagNameCollationSQL(t *testing.T) {
	assert.Contains(t, tagNameCollationSQL("mysql"), "COLLATE utf8mb4_bin")
	assert.Contains(t, tagNameCollationSQL("mysql"), "varchar(50)")
	assert.Empty(t, tagNameCollationSQL("sqlite"))
	assert.Empty(t, tagNameCollationSQL("postgres"))
}
