package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemStatusResponse reports process and host health for the dashboard.
type SystemStatusResponse struct {
	Status         string  `json:"status"`
	Round          int     `json:"round"`
	GameOver       bool    `json:"game_over"`
	Paused         bool    `json:"paused"`
	Goroutines     int     `json:"goroutines"`
	AllocMB        uint64  `json:"alloc_mb"`
	CPUPercent     float64 `json:"cpu_percent"`
	MemUsedPercent float64 `json:"mem_used_percent"`
}

// handleSystemStatus handles system status requests
func (s *Server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	cpuPercent, memPercent := s.hostStats()
	state := s.session.Snapshot()

	status := "running"
	if state.GameOver {
		status = "game_over"
	} else if state.Paused {
		status = "paused"
	}

	s.writeJSON(w, http.StatusOK, SystemStatusResponse{
		Status:         status,
		Round:          state.Round,
		GameOver:       state.GameOver,
		Paused:         state.Paused,
		Goroutines:     runtime.NumGoroutine(),
		AllocMB:        m.Alloc / 1024 / 1024,
		CPUPercent:     cpuPercent,
		MemUsedPercent: memPercent,
	})
}

// hostStats samples host CPU and memory usage, zero on failure.
func (s *Server) hostStats() (float64, float64) {
	cpuAvg := 0.0
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to get CPU percentage")
	} else if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return cpuAvg, 0
	}

	return cpuAvg, memStat.UsedPercent
}
