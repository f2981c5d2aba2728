// clock/ticker.go
package clock

import (
	"sync"
	"time"
)

// Ticker 是可重启的周期计时器，驱动回合倒计时。
// 回调在独立goroutine里执行，调用方负责把它串回自己的事件循环。
type Ticker struct {
	interval time.Duration
	fn       func()
	mutex    sync.Mutex
	cancel   chan struct{}
}

func NewTicker(interval time.Duration, fn func()) *Ticker {
	return &Ticker{interval: interval, fn: fn}
}

// Start 启动计时。已在运行时先停掉旧的再启动，保证不会重复触发。
func (t *Ticker) Start() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.stopLocked()
	cancel := make(chan struct{})
	t.cancel = cancel

	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				t.fn()
			case <-cancel:
				return
			}
		}
	}()
}

// Stop 停止计时，之后不再有任何触发。可重复调用。
func (t *Ticker) Stop() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.stopLocked()
}

func (t *Ticker) stopLocked() {
	if t.cancel != nil {
		close(t.cancel)
		t.cancel = nil
	}
}

// Running 返回计时器是否在运行
func (t *Ticker) Running() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.cancel != nil
}
