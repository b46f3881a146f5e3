//go:build linux
// +build linux

// Linux implementation of thread affinity binding, using the CPU-set
// syscalls exposed by golang.org/x/sys/unix rather than cgo, so the
// runtime never requires a C toolchain to pin lane workers.
package affinity

import (
	"golang.org/x/sys/unix"

	"github.com/corewire/lanedispatch/api"
)

func bindPlatform(coreID int) error {
	if coreID < 0 {
		return api.NewError(api.ErrCodeAffinityFailure, "affinity: invalid core id").
			WithContext("core", coreID)
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(coreID)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return api.NewError(api.ErrCodeAffinityFailure, "affinity: sched_setaffinity failed").
			WithContext("core", coreID).
			WithContext("cause", err.Error())
	}
	return nil
}
