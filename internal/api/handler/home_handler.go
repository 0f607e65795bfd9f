package handler

import (
	"Folio/internal/pkg/consts"
	"Folio/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

func Home(c *gin.Context) {
	response.Message(c, consts.HomeMessage)
}
