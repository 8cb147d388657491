package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skillyst/internal/api/middleware"
	"skillyst/internal/errcode"
	"skillyst/internal/export"
	"skillyst/internal/session"
)

// ExportHandler 负责 PDF 导出。
type ExportHandler struct {
	sessions *session.Store
	pipeline *export.Pipeline
	links    export.Destination
}

func NewExportHandler(sessions *session.Store, pipeline *export.Pipeline, links export.Destination) *ExportHandler {
	return &ExportHandler{sessions: sessions, pipeline: pipeline, links: links}
}

type exportLinkResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Pages    int    `json:"pages"`
}

// POST /v1/sessions/:id/export[?delivery=link]
//
// 默认直接返回 PDF 附件；delivery=link 且启用了对象存储时返回限时下载链接。
// 同一会话已有导出进行中返回 409；没有可截图内容返回 204；其余失败返回 500 和统一文案。
func (h *ExportHandler) Export(c *gin.Context) {
	sess, ok := loadSession(c, h.sessions)
	if !ok {
		return
	}
	log := middleware.LoggerFromContext(c)

	wantLink := c.Query("delivery") == "link"
	if wantLink && h.links == nil {
		BadRequest(c, "download links are not enabled")
		return
	}

	rec, variant := sess.Record()
	req := export.Request{
		SessionID:     sess.ID,
		CorrelationID: middleware.GetCorrelationID(c),
		Record:        rec,
		Variant:       variant,
		Guard:         sess.Guard(),
	}
	if wantLink {
		req.Destination = h.links
	}

	res, err := h.pipeline.Export(c.Request.Context(), req)
	switch {
	case errors.Is(err, export.ErrBusy):
		ErrorWithCode(c, http.StatusConflict, errcode.Busy, "export already in progress")
		return
	case errors.Is(err, export.ErrNoSurface):
		c.Status(http.StatusNoContent)
		return
	case err != nil:
		log.Error("export request failed", slog.Any("error", err))
		ErrorWithCode(c, http.StatusInternalServerError, export.KindOf(err).Code(), export.FailureMessage)
		return
	}

	if wantLink {
		c.JSON(http.StatusOK, exportLinkResponse{Filename: res.Filename, URL: res.Location, Pages: res.Pages})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	c.Header("X-Resume-Pages", strconv.Itoa(res.Pages))
	c.Data(http.StatusOK, export.ContentTypePDF, res.PDF)
}
