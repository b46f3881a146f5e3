//go:build !linux && !windows
// +build !linux,!windows

// Stub affinity binding for platforms without a supported pinning syscall
// (darwin's thread affinity is an advisory hint only, so it is routed
// through this stub too; see coreinfo_other.go for the matching topology
// fallback).
package affinity

import "github.com/corewire/lanedispatch/api"

func bindPlatform(coreID int) error {
	return api.NewError(api.ErrCodeAffinityUnsupported, "affinity: binding not supported on this platform")
}
