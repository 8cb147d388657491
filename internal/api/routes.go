package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"skillyst/internal/export"
	"skillyst/internal/notify"
	"skillyst/internal/session"
	"skillyst/internal/templates"
)

// Dependencies 汇总路由需要的组件，由 main 构造后注入。
type Dependencies struct {
	Logger     *slog.Logger
	Sessions   *session.Store
	Templates  *templates.Registry
	Pipeline   *export.Pipeline
	Subscriber notify.Subscriber
	// Links 为空表示未启用对象存储，导出只支持附件下载。
	Links          export.Destination
	AllowedOrigins []string
}

// RegisterRoutes 注册 /v1 下的会话、编辑、预览、导出和通知路由。
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	sessionHandler := NewSessionHandler(deps.Sessions)
	resumeHandler := NewResumeHandler(deps.Sessions)
	templateHandler := NewTemplateHandler(deps.Sessions, deps.Templates)
	exportHandler := NewExportHandler(deps.Sessions, deps.Pipeline, deps.Links)
	wsHandler := NewWsHandler(deps.Sessions, deps.Subscriber, deps.Logger, deps.AllowedOrigins)

	v1 := router.Group("/v1")
	{
		v1.GET("/templates", templateHandler.ListTemplates)

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", sessionHandler.CreateSession)
			sessions.GET("/:id", sessionHandler.GetSession)
			sessions.DELETE("/:id", sessionHandler.DeleteSession)
			sessions.PUT("/:id/template", sessionHandler.SelectTemplate)
			sessions.PUT("/:id/step", sessionHandler.SetStep)

			sessions.PUT("/:id/resume", resumeHandler.ReplaceResume)
			sessions.DELETE("/:id/resume", resumeHandler.ResetResume)
			sessions.PATCH("/:id/resume/personal", resumeHandler.UpdatePersonal)
			sessions.POST("/:id/resume/:section", resumeHandler.AddEntry)
			sessions.PATCH("/:id/resume/:section/:index", resumeHandler.UpdateEntry)
			sessions.DELETE("/:id/resume/:section/:index", resumeHandler.RemoveEntry)
			sessions.DELETE("/:id/resume/:section/by-id/:entryID", resumeHandler.RemoveEntryByID)

			sessions.GET("/:id/preview", templateHandler.Preview)
			sessions.POST("/:id/export", exportHandler.Export)
			sessions.GET("/:id/notifications", wsHandler.HandleConnection)
		}
	}
}
