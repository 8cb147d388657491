package paginate

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"

	"skillyst/internal/raster"
)

const (
	defaultCreator = "Skillyst Resume Builder"
	imageName      = "resume-surface"
)

// Output 是组装好的 PDF 及其分页信息。
type Output struct {
	PDF   []byte
	Pages int
	Plan  Plan
}

type Paginator struct {
	Rule    StopRule
	Creator string
}

func New(rule StopRule) *Paginator {
	return &Paginator{Rule: rule, Creator: defaultCreator}
}

// Assemble 把一张高分辨率截图切分为 A4 纵向页面的 PDF。
func (p *Paginator) Assemble(img *raster.Image, title string) (*Output, error) {
	if img == nil {
		return nil, errors.New("assemble pdf: nil image")
	}
	plan, err := PlanPages(img.Width, img.Height, p.Rule)
	if err != nil {
		return nil, fmt.Errorf("plan pages: %w", err)
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	if title != "" {
		doc.SetTitle(title, true)
	}
	creator := p.Creator
	if creator == "" {
		creator = defaultCreator
	}
	doc.SetCreator(creator, true)

	opt := fpdf.ImageOptions{ImageType: "PNG", AllowNegativePosition: true}
	doc.RegisterImageOptionsReader(imageName, opt, bytes.NewReader(img.PNG))
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("register image: %w", err)
	}

	for _, page := range plan.Pages {
		doc.AddPage()
		doc.ImageOptions(imageName, 0, page.OffsetMM, PageWidthMM, plan.ImageHeightMM, false, opt, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return &Output{PDF: buf.Bytes(), Pages: len(plan.Pages), Plan: plan}, nil
}
