package workers

import (
	"chat-hub/observability"
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// PresenceCounter is read by the monitor on every tick.
type PresenceCounter interface {
	Count() (connections int, rooms int)
	AllOnlineUsers() []string
}

// PresenceMonitorWorker samples presence and process health every metricInterval.
type PresenceMonitorWorker struct {
	log            *slog.Logger
	presence       PresenceCounter
	monitoring     *observability.MonitoringManager
	metricInterval time.Duration
}

func NewPresenceMonitorWorker(
	log *slog.Logger,
	presence PresenceCounter,
	monitoring *observability.MonitoringManager,
	metricInterval time.Duration,
) *PresenceMonitorWorker {
	return &PresenceMonitorWorker{
		log:            log,
		presence:       presence,
		monitoring:     monitoring,
		metricInterval: metricInterval,
	}
}

func (w *PresenceMonitorWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()

	w.sample(p)
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping presence monitor")
			return nil
		case <-ticker.C:
			w.sample(p)
		}
	}
}

func (w *PresenceMonitorWorker) sample(p *process.Process) {
	connections, rooms := w.presence.Count()
	sample := observability.Sample{
		OnlineUsers: len(w.presence.AllOnlineUsers()),
		Connections: connections,
		Rooms:       rooms,
	}
	rss, cpu, status, err := selfStats(p)
	if err != nil {
		// Presence figures are still worth recording
		w.log.Debug("Failed to collect process stats", "err", err)
	} else {
		sample.RamBytes, sample.CpuPercent, sample.ProcessStatus = rss, cpu, status
	}
	w.monitoring.Record(sample)
	w.log.Info("Presence", "online_users", sample.OnlineUsers, "connections", connections, "rooms", rooms)
}

// selfStats returns memory, CPU and OS status of the hub process.
func selfStats(p *process.Process) (uint64, float64, string, error) {
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
