package paginate

import "strings"

const fallbackFilename = "resume.pdf"

// Filename 由姓名推导下载文件名：连续空白替换为下划线，追加 _resume.pdf。
func Filename(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return fallbackFilename
	}
	return strings.Join(parts, "_") + "_" + fallbackFilename
}
