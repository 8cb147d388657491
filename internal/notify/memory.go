package notify

import (
	"context"
	"sync"
)

// MemoryBroker 是进程内的发布订阅实现，用于未启用 Redis 的单实例部署和 CLI。
// 慢订阅者的缓冲区满时丢弃新消息，发布方不会被阻塞。
type MemoryBroker struct {
	mu     sync.Mutex
	subs   map[string]map[*memorySubscription]struct{}
	buffer int
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		subs:   make(map[string]map[*memorySubscription]struct{}),
		buffer: 16,
	}
}

func (b *MemoryBroker) Publish(_ context.Context, channel string, msg Message) error {
	data, err := encode(msg)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs[channel] {
		select {
		case sub.out <- data:
		default:
		}
	}
	return nil
}

func (b *MemoryBroker) Subscribe(_ context.Context, channel string) (Subscription, error) {
	sub := &memorySubscription{
		broker:  b,
		channel: channel,
		out:     make(chan []byte, b.buffer),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[channel] == nil {
		b.subs[channel] = make(map[*memorySubscription]struct{})
	}
	b.subs[channel][sub] = struct{}{}
	return sub, nil
}

func (b *MemoryBroker) remove(sub *memorySubscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	set := b.subs[sub.channel]
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(b.subs, sub.channel)
	}
	close(sub.out)
}

type memorySubscription struct {
	broker  *MemoryBroker
	channel string
	out     chan []byte
}

func (s *memorySubscription) C() <-chan []byte { return s.out }

func (s *memorySubscription) Close() error {
	s.broker.remove(s)
	return nil
}
