package api

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skillyst/internal/api/middleware"
	"skillyst/internal/resume"
	"skillyst/internal/session"
)

const maxResumeBody = 1 << 20

// ResumeHandler 负责会话内简历数据的编辑。
type ResumeHandler struct {
	sessions *session.Store
}

func NewResumeHandler(sessions *session.Store) *ResumeHandler {
	return &ResumeHandler{sessions: sessions}
}

type updatePersonalRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type updateEntryRequest struct {
	Field string `json:"field" binding:"required"`
	Value any    `json:"value"`
}

type addEntryResponse struct {
	ID     string        `json:"id"`
	Resume resume.Record `json:"resume"`
}

// ReplaceResume 导入一份完整简历，请求体按 JSON Schema 校验。
func (h *ResumeHandler) ReplaceResume(c *gin.Context) {
	sess, ok := loadSession(c, h.sessions)
	if !ok {
		return
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxResumeBody+1))
	if err != nil {
		BadRequest(c, "read request body failed")
		return
	}
	if len(body) > maxResumeBody {
		Error(c, http.StatusRequestEntityTooLarge, "resume too large")
		return
	}
	if err := sess.ReplaceRecord(body); err != nil {
		writeEditError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot().Record)
}

// ResetResume 恢复默认示例简历。
func (h *ResumeHandler) ResetResume(c *gin.Context) {
	sess, ok := loadSession(c, h.sessions)
	if !ok {
		return
	}
	sess.ResetRecord()
	c.JSON(http.StatusOK, sess.Snapshot().Record)
}

func (h *ResumeHandler) UpdatePersonal(c *gin.Context) {
	sess, ok := loadSession(c, h.sessions)
	if !ok {
		return
	}
	var req updatePersonalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := sess.UpdatePersonal(req.Field, req.Value); err != nil {
		writeEditError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot().Record)
}

// AddEntry 在分区末尾追加一个空条目，返回新条目的 ID。
func (h *ResumeHandler) AddEntry(c *gin.Context) {
	sess, ok := loadSession(c, h.sessions)
	if !ok {
		return
	}
	section, err := resume.ParseSection(c.Param("section"))
	if err != nil {
		writeEditError(c, err)
		return
	}
	id, err := sess.AddEntry(section)
	if err != nil {
		writeEditError(c, err)
		return
	}
	c.JSON(http.StatusCreated, addEntryResponse{ID: id, Resume: sess.Snapshot().Record})
}

func (h *ResumeHandler) UpdateEntry(c *gin.Context) {
	sess, section, index, ok := h.entryTarget(c)
	if !ok {
		return
	}
	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := sess.UpdateField(section, index, req.Field, req.Value); err != nil {
		writeEditError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot().Record)
}

// RemoveEntry 按位置删除条目；?id= 携带客户端看到的条目 ID，不一致时返回 409。
func (h *ResumeHandler) RemoveEntry(c *gin.Context) {
	sess, section, index, ok := h.entryTarget(c)
	if !ok {
		return
	}
	if err := sess.RemoveEntry(section, index, c.Query("id")); err != nil {
		middleware.LoggerFromContext(c).Info("remove entry rejected", slog.Any("error", err))
		writeEditError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot().Record)
}

func (h *ResumeHandler) RemoveEntryByID(c *gin.Context) {
	sess, ok := loadSession(c, h.sessions)
	if !ok {
		return
	}
	section, err := resume.ParseSection(c.Param("section"))
	if err != nil {
		writeEditError(c, err)
		return
	}
	if err := sess.RemoveEntryByID(section, c.Param("entryID")); err != nil {
		writeEditError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot().Record)
}

func (h *ResumeHandler) entryTarget(c *gin.Context) (*session.Session, resume.Section, int, bool) {
	sess, ok := loadSession(c, h.sessions)
	if !ok {
		return nil, "", 0, false
	}
	section, err := resume.ParseSection(c.Param("section"))
	if err != nil {
		writeEditError(c, err)
		return nil, "", 0, false
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		BadRequest(c, "index must be an integer")
		return nil, "", 0, false
	}
	return sess, section, index, true
}
