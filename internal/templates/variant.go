package templates

import "strings"

// Variant 标识一种模板渲染策略。
type Variant string

const (
	Modern       Variant = "modern"
	Professional Variant = "professional"
	Creative     Variant = "creative"
	Minimal      Variant = "minimal"
)

var variants = []Variant{Modern, Professional, Creative, Minimal}

// Variants returns all variants in gallery order.
func Variants() []Variant {
	return append([]Variant(nil), variants...)
}

// ParseVariant 解析模板标签，未知标签回退到 Modern。
func ParseVariant(tag string) Variant {
	v := Variant(strings.ToLower(strings.TrimSpace(tag)))
	if v.Known() {
		return v
	}
	return Modern
}

// Known reports whether v is one of the built-in variants.
func (v Variant) Known() bool {
	for _, known := range variants {
		if v == known {
			return true
		}
	}
	return false
}

// TemplateInfo 是模板选择页展示的元数据。
type TemplateInfo struct {
	ID          Variant `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
}

// Gallery returns display metadata for every variant.
func Gallery() []TemplateInfo {
	return []TemplateInfo{
		{ID: Modern, Name: "Modern", Description: "Clean and contemporary design with a focus on readability"},
		{ID: Professional, Name: "Professional", Description: "Traditional layout perfect for corporate environments"},
		{ID: Creative, Name: "Creative", Description: "Bold design for creative industries and roles"},
		{ID: Minimal, Name: "Minimal", Description: "Simple and elegant design with focus on content"},
	}
}
