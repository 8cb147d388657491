package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"

	"skillyst/internal/templates"
)

// Scale 是截图的超采样倍数，用于打印质量输出。
const Scale = 2.0

// A4WidthPx 是 210mm 在 96 DPI 下的 CSS 像素宽度。
const A4WidthPx = 794

// A4HeightPx 是 297mm 在 96 DPI 下的 CSS 像素高度。
const A4HeightPx = 1123

var ErrEmptyImage = errors.New("captured image is empty")

// Image 是栅格化结果：一张 PNG 及其像素尺寸。
type Image struct {
	PNG    []byte
	Width  int
	Height int
}

// Rasterizer 把渲染好的文档截取为高分辨率位图。
// 文档不存在（nil、空 HTML、或缺少 A4 画布元素）时返回 (nil, nil)，视为 no-op。
type Rasterizer interface {
	Capture(ctx context.Context, doc *templates.Document) (*Image, error)
}

// NewImage 解析 PNG 头部，得到像素尺寸。
func NewImage(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image header: %w", err)
	}
	if format != "png" {
		return nil, fmt.Errorf("unexpected image format %q", format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrEmptyImage
	}
	return &Image{PNG: data, Width: cfg.Width, Height: cfg.Height}, nil
}

func surfaceAbsent(doc *templates.Document) bool {
	return doc == nil || len(bytes.TrimSpace(doc.HTML)) == 0
}
