package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid   = errors.New("Invalid request parameters")
	ErrTitleRequired  = errors.New("Title is required")
	ErrTagNameTooLong = errors.New("Tag name must be at most 50 characters")
	ErrPostNotFound   = errors.New("Post not found")
	ErrTagNotFound    = errors.New("Tag not found")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:   BadRequest,
	ErrTitleRequired:  BadRequest,
	ErrTagNameTooLong: BadRequest,
	ErrPostNotFound:   NotFound,
	ErrTagNotFound:    NotFound,
}

// StatusOf 返回错误对应的 HTTP 状态码，未登记的错误视为存储异常
func StatusOf(err error) (int, bool) {
	if code, ok := ErrorMap[err]; ok {
		return code, true
	}
	for target, code := range ErrorMap {
		if errors.Is(err, target) {
			return code, true
		}
	}
	return InternalServerError, false
}
