//go:build windows
// +build windows

// Windows implementation of thread affinity binding via SetThreadAffinityMask.
package affinity

import (
	"syscall"

	"github.com/corewire/lanedispatch/api"
)

func bindPlatform(coreID int) error {
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	procSetThreadAffinityMask := kernel32.NewProc("SetThreadAffinityMask")
	procGetCurrentThread := kernel32.NewProc("GetCurrentThread")
	hThread, _, _ := procGetCurrentThread.Call()
	mask := uintptr(1) << uintptr(coreID)
	ret, _, err := procSetThreadAffinityMask.Call(hThread, mask)
	if ret == 0 {
		return api.NewError(api.ErrCodeAffinityFailure, "affinity: SetThreadAffinityMask failed").
			WithContext("core", coreID).
			WithContext("cause", err.Error())
	}
	return nil
}
