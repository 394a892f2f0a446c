package core

import (
	"context"
	"runtime"
	"time"
)

// SystemClock реализует Clock поверх пакета time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Sleep ждет d или отмены контекста.
func (SystemClock) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Yield уступает процессор другим горутинам; это лишь подсказка планировщику.
func (SystemClock) Yield() { runtime.Gosched() }

// Pacer хранит якорь текущего окна интервала.
type Pacer struct {
	anchor time.Time
}

// NewPacer создает Pacer с якорем в момент now.
func NewPacer(now time.Time) *Pacer {
	return &Pacer{anchor: now}
}

// Anchor возвращает начало текущего окна.
func (p *Pacer) Anchor() time.Time { return p.anchor }

// Remaining возвращает время до конца окна; значение <= 0 означает, что окно пропущено.
func (p *Pacer) Remaining(now time.Time, interval time.Duration) time.Duration {
	return interval - now.Sub(p.anchor)
}

// Advance сдвигает якорь ровно на один интервал, не на "сейчас", чтобы не накапливать дрейф.
func (p *Pacer) Advance(interval time.Duration) { p.anchor = p.anchor.Add(interval) }

// Reset начинает новое окно с момента now.
func (p *Pacer) Reset(now time.Time) { p.anchor = now }
