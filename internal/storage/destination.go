package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"skillyst/internal/export"
)

const exportPrefix = "exports"

// ObjectStore 是 Destination 需要的最小对象存储能力，*Client 实现了它。
type ObjectStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	PresignDownload(ctx context.Context, objectKey, filename string, ttl time.Duration) (string, error)
	DeletePrefix(ctx context.Context, prefix string) error
}

// Destination 把导出的 PDF 上传到对象存储并返回限时下载链接。
// 对象只作为下载中转，会话删除时整体清理。
type Destination struct {
	store ObjectStore
	ttl   time.Duration
}

func NewDestination(store ObjectStore, ttl time.Duration) *Destination {
	return &Destination{store: store, ttl: ttl}
}

// ObjectKey 返回一次导出的对象键：exports/<session>/<uuid>/<filename>。
func ObjectKey(sessionID, filename string) string {
	return fmt.Sprintf("%s/%s/%s", SessionPrefix(sessionID), uuid.NewString(), filename)
}

func SessionPrefix(sessionID string) string {
	return fmt.Sprintf("%s/%s", exportPrefix, sessionID)
}

func (d *Destination) Deliver(ctx context.Context, a export.Artifact) (string, error) {
	key := ObjectKey(a.SessionID, a.Filename)
	if err := d.store.UploadFile(ctx, key, bytes.NewReader(a.Data), int64(len(a.Data)), a.ContentType); err != nil {
		return "", fmt.Errorf("upload export: %w", err)
	}
	link, err := d.store.PresignDownload(ctx, key, a.Filename, d.ttl)
	if err != nil {
		return "", fmt.Errorf("presign export: %w", err)
	}
	return link, nil
}

// Purge 删除会话下的所有导出对象。
func (d *Destination) Purge(ctx context.Context, sessionID string) error {
	return d.store.DeletePrefix(ctx, SessionPrefix(sessionID)+"/")
}
