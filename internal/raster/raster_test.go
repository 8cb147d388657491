package raster

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"

	"skillyst/internal/templates"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestNewImage_ReadsDimensions(t *testing.T) {
	data := encodePNG(t, 20, 34)
	img, err := NewImage(data)
	if err != nil {
		t.Fatalf("new image: %v", err)
	}
	if img.Width != 20 || img.Height != 34 {
		t.Fatalf("unexpected size %dx%d", img.Width, img.Height)
	}
	if !bytes.Equal(img.PNG, data) {
		t.Fatalf("png bytes not preserved")
	}
}

func TestNewImage_RejectsGarbage(t *testing.T) {
	if _, err := NewImage(nil); !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage, got %v", err)
	}
	if _, err := NewImage([]byte("not an image")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestRodRasterizer_AbsentDocumentIsNoop(t *testing.T) {
	r := NewRodRasterizer(nil, RodOptions{Headless: true, NoSandbox: true})

	cases := map[string]*templates.Document{
		"nil":   nil,
		"empty": {Variant: templates.Modern, HTML: []byte("  \n")},
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			img, err := r.Capture(context.Background(), doc)
			if err != nil {
				t.Fatalf("capture: %v", err)
			}
			if img != nil {
				t.Fatalf("expected no image, got %+v", img)
			}
		})
	}
}

func requireBrowser(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser capture in short mode")
	}
	path, ok := launcher.LookPath()
	if !ok {
		t.Skip("no chromium found")
	}
	return path
}

func TestRodRasterizer_CapturesPinnedSurface(t *testing.T) {
	bin := requireBrowser(t)
	r := NewRodRasterizer(nil, RodOptions{Bin: bin, Headless: true, NoSandbox: true})

	// 预览缩放和透明背景都应在截图前被覆盖
	doc := &templates.Document{
		Variant: templates.Minimal,
		HTML: []byte(`<!doctype html><html><body>
<div data-resume-content style="width:120mm;transform:scale(0.5);background:transparent">
<p style="margin:40mm 0 0 20mm">Jane Q Public</p>
</div></body></html>`),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	img, err := r.Capture(ctx, doc)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if img == nil {
		t.Fatalf("surface not captured")
	}

	if d := img.Width - 2*A4WidthPx; d < -2 || d > 2 {
		t.Fatalf("width=%d, want about %d", img.Width, 2*A4WidthPx)
	}
	if img.Height < 2*(A4HeightPx-1) {
		t.Fatalf("height=%d, want at least one A4 page", img.Height)
	}

	decoded, err := png.Decode(bytes.NewReader(img.PNG))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r8, g8, b8, a8 := decoded.At(4, 4).RGBA()
	if r8>>8 != 255 || g8>>8 != 255 || b8>>8 != 255 || a8>>8 != 255 {
		t.Fatalf("corner pixel is not opaque white: %d %d %d %d", r8>>8, g8>>8, b8>>8, a8>>8)
	}
}

func TestRodRasterizer_MissingSurfaceIsNoop(t *testing.T) {
	bin := requireBrowser(t)
	r := NewRodRasterizer(nil, RodOptions{Bin: bin, Headless: true, NoSandbox: true})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	img, err := r.Capture(ctx, &templates.Document{HTML: []byte(`<html><body><p>no canvas</p></body></html>`)})
	if err != nil || img != nil {
		t.Fatalf("expected no-op, got img=%v err=%v", img, err)
	}
}
