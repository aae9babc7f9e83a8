package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// ProcessObserver receives the sampled process stats, e.g. to expose them as gauges.
type ProcessObserver interface {
	ObserveProcess(rssBytes uint64, cpuPercent float64)
}

// ConnectionCounter reports live load of the engine.
type ConnectionCounter interface {
	Online() int
}

type HeartbeatWorker struct {
	log      *slog.Logger
	observer ProcessObserver
	online   ConnectionCounter
	interval time.Duration
}

func NewHeartbeatWorker(log *slog.Logger, observer ProcessObserver, online ConnectionCounter, interval time.Duration) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, observer: observer, online: online, interval: interval}
}

// Run samples memory, CPU and OS status of the current process every interval.
func (w *HeartbeatWorker) Run(ctx context.Context) error {
	w.log.Info("Starting heartbeat worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			rss, cpu, status, err := getSelfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "error", err)
				continue
			}
			if w.observer != nil {
				w.observer.ObserveProcess(rss, cpu)
			}
			online := 0
			if w.online != nil {
				online = w.online.Online()
			}
			w.log.Debug("Heartbeat",
				"pid", os.Getpid(), "status", status,
				"rss_bytes", rss, "cpu_percent", cpu, "online_users", online)
		}
	}
}

func getSelfStats(p *process.Process) (uint64, float64, string, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, "", err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, "", err
	}

	status, err := p.Status()
	if err != nil {
		return 0, 0, "", err
	}
	return memInfo.RSS, cpuPercent, status, nil
}
