package export

import (
	"errors"
	"fmt"

	"skillyst/internal/errcode"
)

// FailureMessage 是导出失败时展示给用户的统一文案，不暴露内部错误细节。
const FailureMessage = "Failed to generate PDF. Please try again."

var (
	// ErrBusy 表示同一会话已有导出在进行中，本次请求未做任何工作。
	ErrBusy = errors.New("export already in progress")
	// ErrNoSurface 表示没有可截图的文档画布，这是静默的 no-op。
	ErrNoSurface = errors.New("no document surface to export")
)

// Kind 标识导出流程中失败的阶段。
type Kind int

const (
	RenderFault Kind = iota + 1
	CaptureFault
	ExportFault
)

func (k Kind) String() string {
	switch k {
	case RenderFault:
		return "render"
	case CaptureFault:
		return "capture"
	case ExportFault:
		return "export"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Code maps the kind to the numeric code carried in notifications.
func (k Kind) Code() int {
	switch k {
	case RenderFault:
		return errcode.RenderFailed
	case CaptureFault:
		return errcode.CaptureFailed
	case ExportFault:
		return errcode.ExportFailed
	default:
		return errcode.SystemError
	}
}

type Fault struct {
	Kind Kind
	Err  error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s fault: %v", f.Kind, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

func fault(kind Kind, err error) error {
	return &Fault{Kind: kind, Err: err}
}

// KindOf returns the fault kind carried by err, or 0 when err is not a Fault.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return 0
}
