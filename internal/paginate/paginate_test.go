package paginate

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/ledongthuc/pdf"

	"skillyst/internal/raster"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestPlanPages(t *testing.T) {
	cases := []struct {
		name    string
		w, h    int
		rule    StopRule
		offsets []float64
	}{
		{"single page trimmed", 1000, 1414, StopRuleTrimmed, []float64{0}},
		{"single page legacy", 1000, 1414, StopRuleLegacy, []float64{0}},
		{"two pages trimmed", 1000, 2828, StopRuleTrimmed, []float64{0, -297}},
		{"two pages legacy", 1000, 2828, StopRuleLegacy, []float64{0, -297}},
		{"exact multiple trimmed", 210, 594, StopRuleTrimmed, []float64{0, -297}},
		{"exact multiple legacy", 210, 594, StopRuleLegacy, []float64{0, -297, -594}},
		{"long document", 1000, 7000, StopRuleTrimmed, []float64{0, -297, -594, -891, -1188}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := PlanPages(tc.w, tc.h, tc.rule)
			if err != nil {
				t.Fatalf("plan: %v", err)
			}
			if len(plan.Pages) != len(tc.offsets) {
				t.Fatalf("expected %d pages, got %d (%+v)", len(tc.offsets), len(plan.Pages), plan.Pages)
			}
			for i, want := range tc.offsets {
				if plan.Pages[i].Index != i || !approx(plan.Pages[i].OffsetMM, want) {
					t.Fatalf("page %d: got %+v want offset %v", i, plan.Pages[i], want)
				}
			}
			wantHeight := float64(tc.h) * 210 / float64(tc.w)
			if !approx(plan.ImageHeightMM, wantHeight) {
				t.Fatalf("image height %v want %v", plan.ImageHeightMM, wantHeight)
			}
		})
	}
}

func TestPlanPages_CoversWholeImage(t *testing.T) {
	for h := 100; h <= 5000; h += 137 {
		plan, err := PlanPages(800, h, StopRuleTrimmed)
		if err != nil {
			t.Fatalf("plan: %v", err)
		}
		covered := float64(len(plan.Pages)) * PageHeightMM
		if covered+210.0/800 < plan.ImageHeightMM {
			t.Fatalf("height %d: %d pages cover %vmm of %vmm", h, len(plan.Pages), covered, plan.ImageHeightMM)
		}
		if len(plan.Pages) > 1 && covered-PageHeightMM >= plan.ImageHeightMM {
			t.Fatalf("height %d: trailing page is blank", h)
		}
	}
}

func TestPlanPages_RejectsEmptyImage(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		if _, err := PlanPages(dims[0], dims[1], StopRuleTrimmed); !errors.Is(err, ErrInvalidImage) {
			t.Fatalf("%v: expected ErrInvalidImage, got %v", dims, err)
		}
	}
}

func TestFilename(t *testing.T) {
	cases := map[string]string{
		"Jane Q Public":     "Jane_Q_Public_resume.pdf",
		"John Doe":          "John_Doe_resume.pdf",
		"  Ada \t Lovelace": "Ada_Lovelace_resume.pdf",
		"":                  "resume.pdf",
		"   ":               "resume.pdf",
		" Jane Doe ":        "Jane_Doe_resume.pdf",
	}
	for in, want := range cases {
		if got := Filename(in); got != want {
			t.Fatalf("Filename(%q)=%q want %q", in, got, want)
		}
	}
}

func testImage(t *testing.T, w, h int) *raster.Image {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: uint8(y % 256), B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	out, err := raster.NewImage(buf.Bytes())
	if err != nil {
		t.Fatalf("new image: %v", err)
	}
	return out
}

func countPages(t *testing.T, data []byte) int {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	return r.NumPage()
}

func TestAssemble_PageCount(t *testing.T) {
	cases := []struct {
		name  string
		w, h  int
		pages int
	}{
		{"one page", 100, 141, 1},
		{"two pages", 100, 282, 2},
		{"three pages", 100, 400, 3},
	}
	p := New(StopRuleTrimmed)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := p.Assemble(testImage(t, tc.w, tc.h), "Jane Doe - Resume")
			if err != nil {
				t.Fatalf("assemble: %v", err)
			}
			if !bytes.HasPrefix(out.PDF, []byte("%PDF-")) {
				t.Fatalf("output is not a pdf")
			}
			if out.Pages != tc.pages {
				t.Fatalf("expected %d pages, got %d", tc.pages, out.Pages)
			}
			if n := countPages(t, out.PDF); n != tc.pages {
				t.Fatalf("pdf has %d pages, want %d", n, tc.pages)
			}
		})
	}
}

func TestAssemble_LegacyRuleAddsTrailingPage(t *testing.T) {
	img := testImage(t, 210, 594)

	trimmed, err := New(StopRuleTrimmed).Assemble(img, "")
	if err != nil {
		t.Fatalf("assemble trimmed: %v", err)
	}
	legacy, err := New(StopRuleLegacy).Assemble(img, "")
	if err != nil {
		t.Fatalf("assemble legacy: %v", err)
	}
	if got := countPages(t, trimmed.PDF); got != 2 {
		t.Fatalf("trimmed pages=%d", got)
	}
	if got := countPages(t, legacy.PDF); got != 3 {
		t.Fatalf("legacy pages=%d", got)
	}
}

func TestAssemble_RejectsBadInput(t *testing.T) {
	p := New(StopRuleTrimmed)
	if _, err := p.Assemble(nil, ""); err == nil {
		t.Fatalf("expected error for nil image")
	}
	if _, err := p.Assemble(&raster.Image{PNG: []byte("x")}, ""); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
	if _, err := p.Assemble(&raster.Image{PNG: []byte("not png"), Width: 10, Height: 10}, ""); err == nil {
		t.Fatalf("expected fpdf error for corrupt png")
	}
}
