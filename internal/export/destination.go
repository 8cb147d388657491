package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const ContentTypePDF = "application/pdf"

// Artifact 是待投递的导出文件。
type Artifact struct {
	SessionID   string
	Filename    string
	ContentType string
	Data        []byte
}

// Destination 把导出文件投递到某处，返回可供调用方使用的位置（路径或链接）。
type Destination interface {
	Deliver(ctx context.Context, a Artifact) (string, error)
}

// DirDestination 把文件写入本地目录，同名文件会被覆盖，与浏览器下载保存行为一致。
type DirDestination struct {
	Dir string
}

func (d DirDestination) Deliver(_ context.Context, a Artifact) (string, error) {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir %q: %w", dir, err)
	}
	path := filepath.Join(dir, filepath.Base(a.Filename))
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return "", fmt.Errorf("write %q: %w", path, err)
	}
	return path, nil
}
