package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"skillyst/internal/errcode"
	"skillyst/internal/notify"
	"skillyst/internal/paginate"
	"skillyst/internal/raster"
	"skillyst/internal/resume"
	"skillyst/internal/templates"
)

// Templates 按 Variant 提供渲染器，*templates.Registry 实现了它。
type Templates interface {
	Renderer(v templates.Variant) templates.Renderer
}

// Recorder 收集导出指标，metrics.ExportRecorder 实现了它。
type Recorder interface {
	Started()
	Finished(variant string, seconds float64)
	Failed(variant, kind string)
	Pages(n int)
}

type Options struct {
	Logger     *slog.Logger
	Templates  Templates
	Rasterizer raster.Rasterizer
	Paginator  *paginate.Paginator
	Notifier   notify.Notifier
	Metrics    Recorder
}

// Pipeline 串联 渲染 -> 截图 -> 分页 -> 投递，并负责忙碌标记与用户通知。
type Pipeline struct {
	logger     *slog.Logger
	templates  Templates
	rasterizer raster.Rasterizer
	paginator  *paginate.Paginator
	notifier   notify.Notifier
	metrics    Recorder
}

func NewPipeline(opts Options) *Pipeline {
	p := &Pipeline{
		logger:     opts.Logger,
		templates:  opts.Templates,
		rasterizer: opts.Rasterizer,
		paginator:  opts.Paginator,
		notifier:   opts.Notifier,
		metrics:    opts.Metrics,
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.paginator == nil {
		p.paginator = paginate.New(paginate.StopRuleTrimmed)
	}
	if p.metrics == nil {
		p.metrics = nopRecorder{}
	}
	return p
}

// Request 描述一次导出。Guard 为空时使用一次性的标记，不做跨请求互斥。
// Destination 为空时只返回 PDF 字节，由调用方自行交付（例如 HTTP 附件）。
type Request struct {
	SessionID     string
	CorrelationID string
	Record        resume.Record
	Variant       templates.Variant
	Guard         *Guard
	Destination   Destination
}

type Result struct {
	Variant  templates.Variant
	Filename string
	PDF      []byte
	Pages    int
	Location string
}

// Export 执行一次完整导出。
//
// 忙碌时直接返回 ErrBusy，不做任何工作也不发送通知。没有可截图画布时返回
// ErrNoSurface，不发送失败通知。其余失败以 *Fault 返回，并且恰好发送一条
// 失败通知。任何路径上忙碌标记都会被释放。
func (p *Pipeline) Export(ctx context.Context, req Request) (*Result, error) {
	guard := req.Guard
	if guard == nil {
		guard = &Guard{}
	}
	if !guard.TryAcquire() {
		return nil, ErrBusy
	}
	defer guard.Release()

	variant := templates.ParseVariant(string(req.Variant))
	log := p.logger.With(
		slog.String("session_id", req.SessionID),
		slog.String("correlation_id", req.CorrelationID),
		slog.String("variant", string(variant)),
	)
	channel := notify.Channel(req.SessionID)

	start := time.Now()
	p.metrics.Started()
	defer func() {
		p.metrics.Finished(string(variant), time.Since(start).Seconds())
	}()

	log.Info("Starting PDF export...")
	res, err := p.runSafely(ctx, log, channel, req, variant)
	if err != nil {
		if errors.Is(err, ErrNoSurface) {
			log.Info("nothing to export, skipping")
			return nil, err
		}
		kind := KindOf(err)
		log.Error("pdf export failed", slog.String("kind", kind.String()), slog.Any("error", err))
		p.metrics.Failed(string(variant), kind.String())
		p.publish(ctx, log, channel, notify.Message{
			Status:        notify.StatusError,
			SessionID:     req.SessionID,
			CorrelationID: req.CorrelationID,
			ErrorCode:     kind.Code(),
			ErrorMessage:  FailureMessage,
		})
		return nil, err
	}

	p.metrics.Pages(res.Pages)
	p.publish(ctx, log, channel, notify.Message{
		Status:        notify.StatusCompleted,
		SessionID:     req.SessionID,
		CorrelationID: req.CorrelationID,
		ErrorCode:     errcode.OK,
		Text:          "PDF generated successfully!",
		Filename:      res.Filename,
		Pages:         res.Pages,
	})
	log.Info("PDF export completed.",
		slog.String("filename", res.Filename),
		slog.Int("pages", res.Pages),
	)
	return res, nil
}

// runSafely 把各阶段的 panic（例如 go-rod 的 Must* 调用）转换为当前阶段的 Fault。
func (p *Pipeline) runSafely(ctx context.Context, log *slog.Logger, channel string, req Request, variant templates.Variant) (res *Result, err error) {
	stage := RenderFault
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fault(stage, fmt.Errorf("panic: %v", r))
		}
	}()
	return p.run(ctx, log, channel, req, variant, &stage)
}

func (p *Pipeline) run(ctx context.Context, log *slog.Logger, channel string, req Request, variant templates.Variant, stage *Kind) (*Result, error) {
	doc, err := p.templates.Renderer(variant).Render(req.Record)
	if err != nil {
		return nil, fault(RenderFault, err)
	}

	p.publish(ctx, log, channel, notify.Message{
		Status:        notify.StatusGenerating,
		SessionID:     req.SessionID,
		CorrelationID: req.CorrelationID,
		ErrorCode:     errcode.OK,
		Text:          "Generating PDF...",
	})

	*stage = CaptureFault
	img, err := p.rasterizer.Capture(ctx, doc)
	if err != nil {
		return nil, fault(CaptureFault, err)
	}
	if img == nil {
		return nil, ErrNoSurface
	}

	*stage = ExportFault
	out, err := p.paginator.Assemble(img, doc.Title)
	if err != nil {
		return nil, fault(ExportFault, err)
	}

	res := &Result{
		Variant:  variant,
		Filename: paginate.Filename(req.Record.PersonalInfo.Name),
		PDF:      out.PDF,
		Pages:    out.Pages,
	}

	if req.Destination != nil {
		location, err := req.Destination.Deliver(ctx, Artifact{
			SessionID:   req.SessionID,
			Filename:    res.Filename,
			ContentType: ContentTypePDF,
			Data:        res.PDF,
		})
		if err != nil {
			return nil, fault(ExportFault, fmt.Errorf("deliver %s: %w", res.Filename, err))
		}
		res.Location = location
	}
	return res, nil
}

// publish 的失败只记录日志，不影响导出结果。
// 调用方 ctx 被取消时通知仍要送达，因此只继承其值并使用独立的超时。
func (p *Pipeline) publish(ctx context.Context, log *slog.Logger, channel string, msg notify.Message) {
	if p.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := p.notifier.Publish(ctx, channel, msg); err != nil {
		log.Warn("publish notification failed", slog.String("status", msg.Status), slog.Any("error", err))
	}
}

const publishTimeout = 5 * time.Second

type nopRecorder struct{}

func (nopRecorder) Started() {}

func (nopRecorder) Finished(string, float64) {}

func (nopRecorder) Failed(string, string) {}

func (nopRecorder) Pages(int) {}
