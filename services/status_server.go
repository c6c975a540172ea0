package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	logger "github.com/turjubaan/turjubaan/log"
)

const heartbeatInterval = 5 * time.Minute

// StatusServer provides the HTTP liveness endpoint for this service and
// counts job outcomes.
type StatusServer struct {
	startTime time.Time
	port      int
	logger    logger.Logger

	// Metrics
	jobsProcessed atomic.Uint64
	jobsFailed    atomic.Uint64
	jobsRejected  atomic.Uint64
}

// NewStatusServer creates a new status server
func NewStatusServer(port int, logger logger.Logger) *StatusServer {
	return &StatusServer{
		startTime: time.Now(),
		port:      port,
		logger:    logger,
	}
}

// Start begins the HTTP status server and the heartbeat log.
func (ss *StatusServer) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/", ss.handleRoot)
	mux.HandleFunc("/status", ss.handleStatus)

	addr := fmt.Sprintf("0.0.0.0:%d", ss.port)
	ss.logger.Infof("Starting status server on http://%s", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			ss.logger.Error("Status server error", err)
		}
	}()

	go ss.heartbeat()
}

// IncProcessed counts a job that produced a final transcript message.
func (ss *StatusServer) IncProcessed() { ss.jobsProcessed.Add(1) }

// IncFailed counts a job that ended in a generic failure message.
func (ss *StatusServer) IncFailed() { ss.jobsFailed.Add(1) }

// IncRejected counts a job rejected at intake validation.
func (ss *StatusServer) IncRejected() { ss.jobsRejected.Add(1) }

// handleRoot returns the liveness greeting.
func (ss *StatusServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "Bot-ka waa nool yahay!")
}

// handleStatus returns detailed service status
func (ss *StatusServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	cpuUsage := 0.0
	if percentages, err := cpu.Percent(0, false); err == nil && len(percentages) > 0 {
		cpuUsage = percentages[0]
	}
	memUsage := 0.0
	if virtualMem, err := mem.VirtualMemory(); err == nil {
		memUsage = virtualMem.UsedPercent
	}

	status := map[string]any{
		"uptime":         time.Since(ss.startTime).String(),
		"cpu_percent":    cpuUsage,
		"memory_percent": memUsage,
		"goroutines":     runtime.NumGoroutine(),
		"jobs_processed": ss.jobsProcessed.Load(),
		"jobs_failed":    ss.jobsFailed.Load(),
		"jobs_rejected":  ss.jobsRejected.Load(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		ss.logger.Error("Error writing status response", err)
	}
}

// heartbeat logs a liveness line every five minutes so operators can tell
// from the logs alone that the process is still running.
func (ss *StatusServer) heartbeat() {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	for range ticker.C {
		ss.logger.Info("Keep-alive service is running...")
	}
}
