package observability

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// MonitoringStats is what /health reports.
type MonitoringStats struct {
	OnlineUsers int `json:"online_users"`
	Connections int `json:"connections"`
	Rooms       int `json:"rooms"`

	ConnectionsOpened uint64 `json:"connections_opened"`
	ConnectionsClosed uint64 `json:"connections_closed"`

	ProcessStatus string  `json:"process_status"`
	CpuPercent    float64 `json:"cpu_percent"`
	RamBytes      uint64  `json:"ram_bytes"`
	AllocMemMb    uint64  `json:"alloc_mem_mb"`
	NumGC         uint32  `json:"num_gc"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Sample is one reading taken by the presence monitor.
type Sample struct {
	OnlineUsers   int
	Connections   int
	Rooms         int
	ProcessStatus string
	CpuPercent    float64
	RamBytes      uint64
}

// MonitoringManager keeps the latest statistics of the hub.
type MonitoringManager struct {
	log         *slog.Logger
	mu          sync.RWMutex
	latestStats MonitoringStats

	opened atomic.Uint64
	closed atomic.Uint64
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	return &MonitoringManager{log: log}
}

func (mm *MonitoringManager) IncrConnectionsOpened() {
	mm.opened.Add(1)
}

func (mm *MonitoringManager) IncrConnectionsClosed() {
	mm.closed.Add(1)
}

// Record stores a sample together with the Go runtime memory figures.
func (mm *MonitoringManager) Record(sample Sample) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.latestStats = MonitoringStats{
		OnlineUsers:       sample.OnlineUsers,
		Connections:       sample.Connections,
		Rooms:             sample.Rooms,
		ConnectionsOpened: mm.opened.Load(),
		ConnectionsClosed: mm.closed.Load(),
		ProcessStatus:     sample.ProcessStatus,
		CpuPercent:        sample.CpuPercent,
		RamBytes:          sample.RamBytes,
		AllocMemMb:        m.Alloc / 1024 / 1024,
		NumGC:             m.NumGC,
		UpdatedAt:         time.Now().UTC(),
	}
	mm.log.Debug("Stats updated",
		"online_users", sample.OnlineUsers,
		"connections", sample.Connections,
		"rooms", sample.Rooms,
		"cpu", sample.CpuPercent,
		"mem_mb", mm.latestStats.AllocMemMb,
	)
}

// GetLatest returns the last recorded stats with live connection counters.
func (mm *MonitoringManager) GetLatest() MonitoringStats {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	stats := mm.latestStats
	stats.ConnectionsOpened = mm.opened.Load()
	stats.ConnectionsClosed = mm.closed.Load()
	return stats
}
