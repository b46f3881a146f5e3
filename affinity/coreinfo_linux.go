//go:build linux
// +build linux

package affinity

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/corewire/lanedispatch/api"
)

// coreInfoPlatform buckets logical cores into performance/efficiency groups
// by distinct maximum-frequency clusters reported under cpufreq. Machines
// with a single frequency cluster (the common case) report every core as
// a performance core. Anything unreadable falls back to NumCPU performance
// cores and zero efficiency cores, matching the cross-platform fallback.
func coreInfoPlatform() api.CoreInfo {
	const sysCPUDir = "/sys/devices/system/cpu"
	entries, err := os.ReadDir(sysCPUDir)
	if err != nil {
		return fallbackCoreInfo()
	}

	freqs := make(map[int]int64) // cpu index -> max freq kHz
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "cpu") {
			continue
		}
		idxStr := strings.TrimPrefix(name, "cpu")
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(sysCPUDir, name, "cpufreq", "cpuinfo_max_freq"))
		if err != nil {
			continue
		}
		freq, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
		if err != nil {
			continue
		}
		freqs[idx] = freq
	}

	if len(freqs) == 0 {
		return fallbackCoreInfo()
	}

	var maxFreq int64
	for _, f := range freqs {
		if f > maxFreq {
			maxFreq = f
		}
	}

	var perf, eff int
	for _, f := range freqs {
		if f == maxFreq {
			perf++
		} else {
			eff++
		}
	}
	return api.CoreInfo{PerformanceCores: perf, EfficiencyCores: eff}
}

func fallbackCoreInfo() api.CoreInfo {
	return api.CoreInfo{PerformanceCores: runtime.NumCPU(), EfficiencyCores: 0}
}
