package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"skillyst/internal/resume"
)

const (
	// PageWidthMM 和 PageMinHeightMM 是渲染画布的名义尺寸（A4）。
	PageWidthMM     = 210.0
	PageMinHeightMM = 297.0

	// SurfaceSelector 标记需要被栅格化的 A4 画布元素。
	SurfaceSelector = "[data-resume-content]"
)

//go:embed files/*.gohtml
var files embed.FS

// Document 是模板渲染的产物：一份自包含、固定宽度的 HTML 文档。
type Document struct {
	Variant     Variant
	Title       string
	HTML        []byte
	WidthMM     float64
	MinHeightMM float64
}

// Renderer 把简历数据渲染为固定宽度的文档。实现必须是纯函数：相同输入产生相同输出。
type Renderer interface {
	Variant() Variant
	Render(rec resume.Record) (*Document, error)
}

type htmlRenderer struct {
	variant Variant
	tmpl    *template.Template
}

func (r *htmlRenderer) Variant() Variant { return r.variant }

func (r *htmlRenderer) Render(rec resume.Record) (*Document, error) {
	data := struct {
		Variant Variant
		Title   string
		View    view
	}{
		Variant: r.variant,
		Title:   documentTitle(rec.PersonalInfo.Name),
		View:    newView(rec),
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		return nil, fmt.Errorf("execute %s template: %w", r.variant, err)
	}
	return &Document{
		Variant:     r.variant,
		Title:       data.Title,
		HTML:        buf.Bytes(),
		WidthMM:     PageWidthMM,
		MinHeightMM: PageMinHeightMM,
	}, nil
}

func documentTitle(name string) string {
	if name == "" {
		return "Resume"
	}
	return name + " - Resume"
}

// Registry 持有四种模板的已解析实例，按 Variant 分发。
type Registry struct {
	renderers map[Variant]Renderer
}

// NewRegistry parses the embedded templates for every variant.
func NewRegistry() (*Registry, error) {
	funcs := template.FuncMap{
		"joinNonEmpty": joinNonEmpty,
	}
	reg := &Registry{renderers: make(map[Variant]Renderer, len(variants))}
	for _, v := range variants {
		tmpl, err := template.New("page").Funcs(funcs).ParseFS(files, "files/page.gohtml", fmt.Sprintf("files/%s.gohtml", v))
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", v, err)
		}
		reg.renderers[v] = &htmlRenderer{variant: v, tmpl: tmpl}
	}
	return reg, nil
}

// MustRegistry wraps NewRegistry and panics on failure.
func MustRegistry() *Registry {
	reg, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return reg
}

// Renderer returns the renderer for v, falling back to Modern.
func (r *Registry) Renderer(v Variant) Renderer {
	if rr, ok := r.renderers[v]; ok {
		return rr
	}
	return r.renderers[Modern]
}

// Render renders rec with the variant named by tag.
func (r *Registry) Render(rec resume.Record, tag string) (*Document, error) {
	return r.Renderer(ParseVariant(tag)).Render(rec)
}
