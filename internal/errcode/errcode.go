package errcode

// 错误码约定：
// - 0：无错误
// - 4xxx：调用方可恢复的错误（例如导出进行中、索引已过期）
// - 5xxx：系统错误（渲染、截图、导出流程中断）
const (
	OK            = 0
	InvalidInput  = 4000
	NotFound      = 4004
	Busy          = 4009
	StaleIndex    = 4010
	SystemError   = 5000
	RenderFailed  = 5001
	CaptureFailed = 5002
	ExportFailed  = 5003
)
