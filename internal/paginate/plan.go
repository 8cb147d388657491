package paginate

import (
	"errors"
	"fmt"
)

const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
)

var ErrInvalidImage = errors.New("image dimensions must be positive")

// StopRule 决定何时停止追加页面。
type StopRule int

const (
	// StopRuleTrimmed 在剩余高度不超过一行源像素时停止，不产生尾部空白页。
	StopRuleTrimmed StopRule = iota
	// StopRuleLegacy 在剩余高度 >= 0 时继续，内容恰好是 297mm 整数倍时会多出一页空白。
	StopRuleLegacy
)

func (r StopRule) String() string {
	switch r {
	case StopRuleTrimmed:
		return "trimmed"
	case StopRuleLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("StopRule(%d)", int(r))
	}
}

// Placement 描述整张图片在某一页上的垂直偏移（mm，向上为负）。
type Placement struct {
	Index    int
	OffsetMM float64
}

type Plan struct {
	ImageHeightMM float64
	Pages         []Placement
}

// PlanPages 把 widthPx x heightPx 的位图按 210mm 宽度缩放后切分到 A4 页面上。
// 每一页都放置同一张完整图片，只是偏移量递减一个页高，因此内容既不会跳过也不会重叠。
func PlanPages(widthPx, heightPx int, rule StopRule) (Plan, error) {
	if widthPx <= 0 || heightPx <= 0 {
		return Plan{}, fmt.Errorf("%w: %dx%d", ErrInvalidImage, widthPx, heightPx)
	}

	imgHeight := float64(heightPx) * PageWidthMM / float64(widthPx)
	epsilon := PageWidthMM / float64(widthPx)

	plan := Plan{
		ImageHeightMM: imgHeight,
		Pages:         []Placement{{Index: 0, OffsetMM: 0}},
	}

	heightLeft := imgHeight - PageHeightMM
	for rule.more(heightLeft, epsilon) {
		i := len(plan.Pages)
		plan.Pages = append(plan.Pages, Placement{Index: i, OffsetMM: -float64(i) * PageHeightMM})
		heightLeft -= PageHeightMM
	}
	return plan, nil
}

func (r StopRule) more(heightLeft, epsilon float64) bool {
	if r == StopRuleLegacy {
		return heightLeft >= 0
	}
	return heightLeft > epsilon
}
