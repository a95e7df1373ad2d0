// system.go captures process state at report time.

package faultline

import (
	"os"
	"runtime"
	"time"
)

// CaptureSystemInfo captures process metrics at the current moment.
// The startTime parameter is used to calculate process uptime.
func CaptureSystemInfo(startTime time.Time) *SystemInfo {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	hostname, _ := os.Hostname() // Ignore error, empty hostname is acceptable

	uptimeMs := time.Since(startTime).Milliseconds()
	if uptimeMs < 0 {
		uptimeMs = 0 // Clamp to 0 if start time is in the future
	}

	return &SystemInfo{
		Hostname:       hostname,
		PID:            os.Getpid(),
		GoroutineCount: runtime.NumGoroutine(),
		MemoryBytes:    int64(memStats.Alloc),
		UptimeMs:       uptimeMs,
	}
}
