package export

import "sync/atomic"

// Guard 是单个会话的忙碌标记，同一时刻最多允许一次导出。零值可用。
type Guard struct {
	busy atomic.Bool
}

// TryAcquire 在空闲时占用标记并返回 true；已占用时返回 false。
func (g *Guard) TryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

func (g *Guard) Release() {
	g.busy.Store(false)
}

func (g *Guard) Busy() bool {
	return g.busy.Load()
}
