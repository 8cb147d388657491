package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"skillyst/internal/raster"
	"skillyst/internal/templates"
)

type pngRasterizer struct {
	width, height int
	variants      []templates.Variant
}

func (p *pngRasterizer) Capture(_ context.Context, doc *templates.Document) (*raster.Image, error) {
	p.variants = append(p.variants, doc.Variant)
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return raster.NewImage(buf.Bytes())
}

func execute(t *testing.T, r raster.Rasterizer, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(r)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExportCommand_DefaultResume(t *testing.T) {
	dir := t.TempDir()
	r := &pngRasterizer{width: 100, height: 282}

	out, err := execute(t, r, "--out", dir, "--template", "Minimal")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	path := filepath.Join(dir, "John_Doe_resume.pdf")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a pdf")
	}
	if !strings.Contains(out, "2 pages") || !strings.Contains(out, "minimal") {
		t.Fatalf("unexpected summary %q", out)
	}
	if len(r.variants) != 1 || r.variants[0] != templates.Minimal {
		t.Fatalf("rendered variants %v", r.variants)
	}
}

func TestExportCommand_InputFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "resume.json")
	doc := `{
	  "personalInfo": {"name":"Grace  Hopper","title":"","email":"","phone":"","location":"","website":"","summary":""},
	  "experience": [], "education": [], "skills": []
	}`
	if err := os.WriteFile(input, []byte(doc), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	if _, err := execute(t, &pngRasterizer{width: 100, height: 100}, "--input", input, "--out", dir); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Grace_Hopper_resume.pdf")); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
}

func TestExportCommand_InvalidInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "resume.json")
	if err := os.WriteFile(input, []byte(`{"personalInfo": {}}`), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	r := &pngRasterizer{width: 100, height: 100}
	if _, err := execute(t, r, "--input", input, "--out", dir); err == nil {
		t.Fatalf("expected schema error")
	}
	if len(r.variants) != 0 {
		t.Fatalf("invalid input reached the rasterizer")
	}
}
