package raster

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"skillyst/internal/templates"
)

// RodOptions 控制 Chromium 的启动方式。
type RodOptions struct {
	Bin       string
	Headless  bool
	NoSandbox bool
	// Timeout 作用于单个页面上的每一步操作，0 表示只受调用方 ctx 约束。
	Timeout time.Duration
}

// RodRasterizer 每次截图启动一个独立的无头浏览器，结束后保证清理。
type RodRasterizer struct {
	logger *slog.Logger
	opts   RodOptions
}

func NewRodRasterizer(logger *slog.Logger, opts RodOptions) *RodRasterizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &RodRasterizer{logger: logger, opts: opts}
}

const surfaceCSS = `
  html, body {
    margin: 0 !important;
    padding: 0 !important;
    background: white !important;
  }
  * {
    -webkit-print-color-adjust: exact !important;
    print-color-adjust: exact !important;
  }
`

const pinSurfaceScript = `() => {
  this.style.transform = 'none';
  this.style.width = '210mm';
  this.style.minHeight = '297mm';
  this.style.margin = '0';
  this.style.boxShadow = 'none';
  window.scrollTo(0, 0);
  return true;
}`

const fontsReadyScript = `() => {
  if (document && document.fonts && document.fonts.ready) {
    return Promise.race([
      document.fonts.ready.then(() => true),
      new Promise((resolve) => setTimeout(() => resolve(true), 3000))
    ]);
  }
  return true;
}`

func (r *RodRasterizer) Capture(ctx context.Context, doc *templates.Document) (*Image, error) {
	if surfaceAbsent(doc) {
		return nil, nil
	}

	log := r.logger.With(slog.String("variant", string(doc.Variant)))

	launch := launcher.New().
		Context(ctx).
		Headless(r.opts.Headless).
		NoSandbox(r.opts.NoSandbox)
	defer launch.Cleanup()

	if bin := r.opts.Bin; bin != "" {
		launch = launch.Bin(bin)
	} else if path, ok := launcher.LookPath(); ok {
		launch = launch.Bin(path)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	browser := rod.New().ControlURL(browserURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()
	if r.opts.Timeout > 0 {
		page = page.Timeout(r.opts.Timeout)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             A4WidthPx,
		Height:            A4HeightPx,
		DeviceScaleFactor: Scale,
	}); err != nil {
		return nil, fmt.Errorf("set viewport: %w", err)
	}
	if err := (proto.EmulationSetDefaultBackgroundColorOverride{
		Color: &proto.DOMRGBA{R: 255, G: 255, B: 255},
	}).Call(page); err != nil {
		return nil, fmt.Errorf("set background: %w", err)
	}

	if err := page.SetDocumentContent(string(doc.HTML)); err != nil {
		return nil, fmt.Errorf("set document content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}
	if _, evalErr := page.Eval(fontsReadyScript); evalErr != nil {
		log.Warn("Raster: document.fonts.ready wait failed, continue", slog.Any("error", evalErr))
	}
	if err := page.AddStyleTag("", surfaceCSS); err != nil {
		return nil, fmt.Errorf("inject surface css: %w", err)
	}

	has, el, err := page.Has(templates.SurfaceSelector)
	if err != nil {
		return nil, fmt.Errorf("query surface: %w", err)
	}
	if !has {
		log.Info("Raster: no resume surface in document, skipping capture")
		return nil, nil
	}

	if _, err := el.Eval(pinSurfaceScript); err != nil {
		return nil, fmt.Errorf("pin surface: %w", err)
	}

	shape, err := el.Shape()
	if err != nil {
		return nil, fmt.Errorf("measure surface: %w", err)
	}
	if len(shape.Quads) == 0 {
		log.Info("Raster: resume surface has no layout box, skipping capture")
		return nil, nil
	}
	box := shape.Box()

	shot, err := proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      box.X,
			Y:      box.Y,
			Width:  box.Width,
			Height: box.Height,
			Scale:  1,
		},
		CaptureBeyondViewport: true,
	}.Call(page)
	if err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}

	img, err := NewImage(shot.Data)
	if err != nil {
		return nil, err
	}
	log.Info("Raster: surface captured",
		slog.Int("width_px", img.Width),
		slog.Int("height_px", img.Height),
		slog.Float64("box_width", box.Width),
		slog.Float64("box_height", box.Height),
	)
	return img, nil
}
