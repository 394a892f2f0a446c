package host

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
)

// Snapshot - сведения об узле, которые пишутся в диагностические логи.
type Snapshot struct {
	Hostname string
	Platform string
	Kernel   string
	Load1    float64
	Load5    float64
	Load15   float64
}

// Collect собирает снимок состояния узла.
func Collect(ctx context.Context) (Snapshot, error) {
	hInfo, err := host.InfoWithContext(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("host info: %w", err)
	}
	ld, err := load.AvgWithContext(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load info: %w", err)
	}
	return Snapshot{
		Hostname: hInfo.Hostname,
		Platform: hInfo.Platform,
		Kernel:   hInfo.KernelVersion,
		Load1:    ld.Load1,
		Load5:    ld.Load5,
		Load15:   ld.Load15,
	}, nil
}

// LogValue позволяет передавать Snapshot в slog как группу.
func (s Snapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("hostname", s.Hostname),
		slog.String("platform", s.Platform),
		slog.String("kernel", s.Kernel),
		slog.Float64("load1", s.Load1),
		slog.Float64("load5", s.Load5),
		slog.Float64("load15", s.Load15),
	)
}
