//go:build !linux
// +build !linux

package affinity

import (
	"runtime"

	"github.com/corewire/lanedispatch/api"
)

// coreInfoPlatform reports total hardware concurrency as performance cores
// on platforms without a topology probe (Windows, macOS, and the stub
// target), matching the documented fallback rule.
func coreInfoPlatform() api.CoreInfo {
	return api.CoreInfo{PerformanceCores: runtime.NumCPU(), EfficiencyCores: 0}
}
