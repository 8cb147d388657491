package resume

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator 为新条目生成标识。
type IDGenerator interface {
	NewID(prefix string) string
}

// UUIDGenerator 生成 "<prefix>-<uuid>" 形式的标识，不依赖时钟精度。
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(prefix string) string {
	if prefix == "" {
		return uuid.NewString()
	}
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
