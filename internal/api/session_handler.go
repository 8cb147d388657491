package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillyst/internal/api/middleware"
	"skillyst/internal/session"
)

// SessionHandler 负责会话的创建、查询、删除和阶段切换。
type SessionHandler struct {
	sessions *session.Store
}

func NewSessionHandler(sessions *session.Store) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type selectTemplateRequest struct {
	Template string `json:"template" binding:"required"`
}

type setStepRequest struct {
	Step session.Step `json:"step" binding:"required"`
}

// CreateSession 创建一个以默认简历为初始数据的新会话。
func (h *SessionHandler) CreateSession(c *gin.Context) {
	sess := h.sessions.Create()
	middleware.LoggerFromContext(c).Info("session created")
	c.JSON(http.StatusCreated, sess.Snapshot())
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	sess, ok := loadSession(c, h.sessions)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		writeEditError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SelectTemplate 选择模板并进入编辑阶段；未知模板回退到 modern。
func (h *SessionHandler) SelectTemplate(c *gin.Context) {
	sess, ok := loadSession(c, h.sessions)
	if !ok {
		return
	}
	var req selectTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	sess.SelectTemplate(req.Template)
	c.JSON(http.StatusOK, sess.Snapshot())
}

// SetStep 在编辑和预览之间切换。回到模板选择需要重新调用 SelectTemplate。
func (h *SessionHandler) SetStep(c *gin.Context) {
	sess, ok := loadSession(c, h.sessions)
	if !ok {
		return
	}
	var req setStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	switch req.Step {
	case session.StepEdit:
		sess.BackToEdit()
	case session.StepPreview:
		sess.Preview()
	default:
		BadRequest(c, "step must be edit or preview")
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func loadSession(c *gin.Context, sessions *session.Store) (*session.Session, bool) {
	sess, err := sessions.Get(c.Param("id"))
	if err != nil {
		writeEditError(c, err)
		return nil, false
	}
	return sess, true
}
