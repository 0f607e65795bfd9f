package handler

import (
	"Folio/internal/pkg/response"
	"Folio/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagSvc service.TagService
}

func NewTagHandler(tagSvc service.TagService) *TagHandler {
	return &TagHandler{
		tagSvc: tagSvc,
	}
}

func (s *TagHandler) ListTags(c *gin.Context) {
	tags, err := s.tagSvc.ListTags(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, tags)
}

func (s *TagHandler) GetPostsByTag(c *gin.Context) {
	posts, err := s.tagSvc.GetPostsByTag(c.Request.Context(), c.Param("tagName"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, posts)
}

func (s *TagHandler) CleanupOrphanTags(c *gin.Context) {
	res, err := s.tagSvc.CleanupOrphanTags(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}
