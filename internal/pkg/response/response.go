package response

import (
	"Folio/internal/api/dto"
	"Folio/internal/pkg/util"
	"Folio/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Success 成功返回封装
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Message 返回 {"message": ...}
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.MessageDTO{Message: message})
}

// Fail 失败返回封装
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorDTO{Error: message})
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fe := ve[0]
		Fail(c, http.StatusBadRequest, (&util.ValidationError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()}).Error())
		return
	}

	var dtoErr *util.ValidationError
	if errors.As(err, &dtoErr) {
		Fail(c, http.StatusBadRequest, dtoErr.Error())
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	var syntaxError *json.SyntaxError
	if errors.As(err, &syntaxError) {
		Fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	code, ok := service.StatusOf(err)
	if !ok {
		log.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "err", err)
	}
	Fail(c, code, err.Error())
}
