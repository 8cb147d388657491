package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"skillyst/internal/api/middleware"
	"skillyst/internal/session"
	"skillyst/internal/templates"
)

// TemplateHandler 负责模板列表和 HTML 预览。
type TemplateHandler struct {
	sessions  *session.Store
	templates *templates.Registry
}

func NewTemplateHandler(sessions *session.Store, registry *templates.Registry) *TemplateHandler {
	return &TemplateHandler{sessions: sessions, templates: registry}
}

// GET /v1/templates
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": templates.Gallery()})
}

// GET /v1/sessions/:id/preview[?template=]
// 渲染当前简历为 HTML 并把会话切换到预览阶段。?template= 只影响本次渲染，不改变会话选择。
func (h *TemplateHandler) Preview(c *gin.Context) {
	sess, ok := loadSession(c, h.sessions)
	if !ok {
		return
	}
	rec, variant := sess.Record()
	if tag, ok := c.GetQuery("template"); ok {
		variant = templates.ParseVariant(tag)
	}

	doc, err := h.templates.Renderer(variant).Render(rec)
	if err != nil {
		middleware.LoggerFromContext(c).Error("render preview failed", slog.Any("error", err))
		Internal(c, "failed to render preview")
		return
	}
	sess.Preview()
	c.Header("X-Resume-Template", string(doc.Variant))
	c.Data(http.StatusOK, "text/html; charset=utf-8", doc.HTML)
}
