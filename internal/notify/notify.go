package notify

import (
	"context"
	"encoding/json"
	"fmt"
)

// 通知状态，与前端解析保持一致。
const (
	StatusGenerating = "generating"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// Message 是推送给前端的统一通知协议（Redis Pub/Sub 或进程内转发到 WebSocket）。
type Message struct {
	Status        string `json:"status"`
	SessionID     string `json:"session_id"`
	CorrelationID string `json:"correlation_id"`
	ErrorCode     int    `json:"error_code"`
	ErrorMessage  string `json:"error_message"`
	Text          string `json:"text,omitempty"`
	Filename      string `json:"filename,omitempty"`
	Pages         int    `json:"pages,omitempty"`
}

// Channel 返回会话的通知频道名。
func Channel(sessionID string) string {
	return "session_notify:" + sessionID
}

type Notifier interface {
	Publish(ctx context.Context, channel string, msg Message) error
}

// Subscription 按到达顺序投递原始 JSON 负载，Close 之后 C 会被关闭。
type Subscription interface {
	C() <-chan []byte
	Close() error
}

type Subscriber interface {
	Subscribe(ctx context.Context, channel string) (Subscription, error)
}

// Broker 同时支持发布与订阅。
type Broker interface {
	Notifier
	Subscriber
}

func encode(msg Message) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal notification payload: %w", err)
	}
	return data, nil
}

// Decode parses a payload delivered by a Subscription.
func Decode(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, fmt.Errorf("decode notification payload: %w", err)
	}
	return msg, nil
}
