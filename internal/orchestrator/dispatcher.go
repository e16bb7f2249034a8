package orchestrator

import (
	"context"

	"saka/internal/gateway/notifier"
	"saka/internal/logger"
)

// Dispatcher 以单 worker + 有界队列做 fire-and-forget 通知。
// Enqueue 永不阻塞调用方：队列满即丢弃并记日志；发送失败只记日志。
type Dispatcher struct {
	notifier notifier.TextNotifier
	queue    chan string
}

func NewDispatcher(n notifier.TextNotifier, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Dispatcher{notifier: n, queue: make(chan string, queueSize)}
}

// Start 启动发送 worker，直到 ctx 取消。
func (d *Dispatcher) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case body := <-d.queue:
				if err := d.notifier.SendText(body); err != nil {
					logger.Warnf("notification delivery failed: %v", err)
				}
			}
		}
	}()
}

func (d *Dispatcher) Enqueue(body string) {
	select {
	case d.queue <- body:
	default:
		logger.Warnf("notification queue full, dropping report")
	}
}
