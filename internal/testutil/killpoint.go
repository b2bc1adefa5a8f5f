//go:build crashtest

// Package testutil provides whitebox crash-testing hooks for the channel
// engine.
//
// Kill points let a test harness deterministically exit the writer process
// at a specific point in the write/close/abort protocol, so a reader process
// mapping the same file can be driven through the windows that matter most:
// between the payload copy and the release-store publication, and just
// before a terminal sentinel is installed.
//
// Usage:
//
//	// In production code (compiled out without the build tag):
//	testutil.MaybeKill(testutil.KPWriterPublish0)
//
//	// In a test harness:
//	testutil.SetKillPoint(testutil.KPWriterPublish0)
//
// Build with kill points enabled:
//
//	go build -tags crashtest ./...
package testutil

import (
	"os"
	"sync"
	"sync/atomic"
)

type killPointState struct {
	target atomic.Value // stores string
	armed  atomic.Bool

	mu        sync.RWMutex
	hitCounts map[string]int64
}

var globalKillPoint = &killPointState{
	hitCounts: make(map[string]int64),
}

// KillPointEnvVar is the environment variable used to set the kill point target.
const KillPointEnvVar = "MEMCHAN_KILL_POINT"

func init() {
	if target := os.Getenv(KillPointEnvVar); target != "" {
		globalKillPoint.target.Store(target)
		globalKillPoint.armed.Store(true)
	}
}

// SetKillPoint sets the target kill point name.
func SetKillPoint(name string) {
	globalKillPoint.target.Store(name)
	globalKillPoint.armed.Store(true)
}

// ClearKillPoint clears the kill point target.
func ClearKillPoint() {
	globalKillPoint.target.Store("")
	globalKillPoint.armed.Store(false)
}

// ArmKillPoint enables kill point processing.
func ArmKillPoint() {
	globalKillPoint.armed.Store(true)
}

// DisarmKillPoint disables kill point processing without clearing the target.
func DisarmKillPoint() {
	globalKillPoint.armed.Store(false)
}

// IsKillPointArmed returns whether kill points are currently armed.
func IsKillPointArmed() bool {
	return globalKillPoint.armed.Load()
}

// GetKillPointTarget returns the current kill point target.
func GetKillPointTarget() string {
	if v := globalKillPoint.target.Load(); v != nil {
		return v.(string)
	}
	return ""
}

// GetKillPointHitCount returns how many times a kill point was reached.
func GetKillPointHitCount(name string) int64 {
	globalKillPoint.mu.RLock()
	defer globalKillPoint.mu.RUnlock()
	return globalKillPoint.hitCounts[name]
}

// ResetKillPointCounts resets all hit counts.
func ResetKillPointCounts() {
	globalKillPoint.mu.Lock()
	defer globalKillPoint.mu.Unlock()
	globalKillPoint.hitCounts = make(map[string]int64)
}

// MaybeKill exits the process if name matches the armed target.
// Exit code 0 signals an intentional kill, not a crash signal.
func MaybeKill(name string) {
	if !globalKillPoint.armed.Load() {
		return
	}

	globalKillPoint.mu.Lock()
	globalKillPoint.hitCounts[name]++
	globalKillPoint.mu.Unlock()

	target, ok := globalKillPoint.target.Load().(string)
	if !ok || target == "" {
		return
	}

	if target == name {
		os.Exit(0)
	}
}

// Kill point names, "Component.Operation:N" where N=0 is "before", N=1 is "after".
const (
	// KPWriterPublish0 fires after the payload and padding are copied into
	// the mapping but before the length-word release-store, the single
	// synchronization edge a reader relies on.
	KPWriterPublish0 = "Writer.Publish:0"
	// KPWriterPublish1 fires immediately after the release-store.
	KPWriterPublish1 = "Writer.Publish:1"
	// KPWriterClose0 fires before the CLOSE sentinel is installed.
	KPWriterClose0 = "Writer.Close:0"
	// KPWriterAbort0 fires before the ABORT sentinel is installed from the
	// destructor path.
	KPWriterAbort0 = "Writer.Abort:0"
	// KPMmapCreate0 fires after the backing file is created, sized and
	// mapped, but before the header is written into it.
	KPMmapCreate0 = "Mmap.Create:0"
)
