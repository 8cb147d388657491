package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skillyst/internal/errcode"
	"skillyst/internal/resume"
	"skillyst/internal/session"
)

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// ErrorWithCode 在错误文案之外附带数字错误码，供前端区分处理。
func ErrorWithCode(c *gin.Context, status, code int, msg string) {
	c.JSON(status, gin.H{"error": msg, "code": code})
}

func BadRequest(c *gin.Context, msg string) { Error(c, http.StatusBadRequest, msg) }
func NotFound(c *gin.Context, msg string)   { Error(c, http.StatusNotFound, msg) }
func Conflict(c *gin.Context, msg string)   { Error(c, http.StatusConflict, msg) }
func Internal(c *gin.Context, msg string)   { Error(c, http.StatusInternalServerError, msg) }

// writeEditError 把简历编辑相关的领域错误映射为 HTTP 状态码。
func writeEditError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		ErrorWithCode(c, http.StatusNotFound, errcode.NotFound, "session not found")
	case errors.Is(err, resume.ErrStaleIndex):
		ErrorWithCode(c, http.StatusConflict, errcode.StaleIndex, err.Error())
	case errors.Is(err, resume.ErrEntryNotFound):
		ErrorWithCode(c, http.StatusNotFound, errcode.NotFound, err.Error())
	case errors.Is(err, resume.ErrUnknownSection),
		errors.Is(err, resume.ErrUnknownField),
		errors.Is(err, resume.ErrIndexOutOfRange),
		errors.Is(err, resume.ErrInvalidLevel),
		errors.Is(err, resume.ErrInvalidValue),
		errors.Is(err, resume.ErrSchema):
		ErrorWithCode(c, http.StatusBadRequest, errcode.InvalidInput, err.Error())
	default:
		ErrorWithCode(c, http.StatusInternalServerError, errcode.SystemError, "internal error")
	}
}
