package server

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/qforge/internal/database"
	"github.com/aristath/qforge/internal/events"
	"github.com/aristath/qforge/internal/modules/results"
)

// SystemHandlers handles system-wide monitoring endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	startupTime time.Time
	resultsDB   *database.DB
	cacheDB     *database.DB
	resultRepo  *results.ResultRepository
	bus         *events.Bus
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(
	log zerolog.Logger,
	resultsDB, cacheDB *database.DB,
	resultRepo *results.ResultRepository,
	bus *events.Bus,
) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("component", "system_handlers").Logger(),
		startupTime: time.Now(),
		resultsDB:   resultsDB,
		cacheDB:     cacheDB,
		resultRepo:  resultRepo,
		bus:         bus,
	}
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent := 0.0
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		cpuPercent = percents[0]
	}

	memUsedPercent := 0.0
	var memUsedMB, memTotalMB uint64
	if vm, err := mem.VirtualMemory(); err == nil {
		memUsedPercent = vm.UsedPercent
		memUsedMB = vm.Used / 1024 / 1024
		memTotalMB = vm.Total / 1024 / 1024
	}

	totalRuns := 0
	if h.resultRepo != nil {
		if count, err := h.resultRepo.CountRuns(); err == nil {
			totalRuns = count
		}
	}

	subscribers := 0
	if h.bus != nil {
		subscribers = h.bus.SubscriberCount()
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"uptime_seconds": int(time.Since(h.startupTime).Seconds()),
			"total_runs":     totalRuns,
			"cpu": map[string]interface{}{
				"percent": cpuPercent,
			},
			"memory": map[string]interface{}{
				"used_percent": memUsedPercent,
				"used_mb":      memUsedMB,
				"total_mb":     memTotalMB,
			},
			"runtime": map[string]interface{}{
				"goroutines": runtime.NumGoroutine(),
				"version":    runtime.Version(),
			},
			"live_subscribers": subscribers,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// HandleDatabaseStats handles GET /api/system/database/stats
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	stats := map[string]interface{}{}
	for _, db := range []*database.DB{h.resultsDB, h.cacheDB} {
		if db == nil {
			continue
		}
		dbStats, err := db.GetStats()
		if err != nil {
			h.log.Warn().Err(err).Str("database", db.Name()).Msg("Failed to get database stats")
			continue
		}
		stats[db.Name()] = map[string]interface{}{
			"size_bytes":     dbStats.SizeBytes,
			"wal_size_bytes": dbStats.WALSizeBytes,
			"page_count":     dbStats.PageCount,
			"page_size":      dbStats.PageSize,
			"freelist_count": dbStats.FreelistCount,
		}
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"databases": stats,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// writeJSON writes a JSON response
func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	health := "ok"
	if s.container.ResultsDB != nil {
		if err := s.container.ResultsDB.QuickCheck(ctx); err != nil {
			s.log.Error().Err(err).Msg("Health check failed")
			status = http.StatusServiceUnavailable
			health = "degraded"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    health,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
