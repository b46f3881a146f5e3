// Package affinity provides the platform boundary a Lane consumes to pin
// its worker to a logical CPU core, and to query best-effort core
// topology. Binding is always best-effort: failures are logged, never
// fatal, and the caller proceeds unpinned.
//
// Platform-specific implementations live in separate files (affinity_linux.go,
// affinity_windows.go, affinity_stub.go) guarded by build tags, following the
// same split the runtime's topology probe (coreinfo_linux.go, coreinfo_other.go)
// uses.
package affinity

import (
	"errors"
	"sync"

	"github.com/corewire/lanedispatch/api"
	"github.com/corewire/lanedispatch/diag"
)

var warnOnce sync.Map // reason string -> *sync.Once

// Bind requests that the calling OS thread run on coreID. The caller must
// have already called runtime.LockOSThread, or the binding applies to
// whichever OS thread the scheduler currently has the goroutine on.
//
// bindPlatform reports its failures as *api.Error so Bind can apply the
// two distinct policies spec §7 calls for: AffinityUnsupported (the
// platform has no pinning syscall at all) is logged once per process per
// reason, since every call on that platform fails identically; it is
// still never fatal: callers must not depend on binding succeeding for
// correctness, only for cache locality.
func Bind(coreID int) error {
	err := bindPlatform(coreID)
	if err == nil {
		return nil
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Code == api.ErrCodeAffinityUnsupported {
		warnOnceFor(apiErr.Error())
		return err
	}

	diag.Logger.Warn().Err(err).Int("core", coreID).Msg("affinity: bind failed, continuing unpinned")
	return err
}

// CoreInfo performs a best-effort query of logical performance/efficiency
// core counts, falling back to reporting total hardware concurrency as
// performance cores when the platform cannot distinguish the two.
func CoreInfo() api.CoreInfo {
	return coreInfoPlatform()
}

// Default is an api.Binder backed by the package-level Bind/CoreInfo
// functions, for callers that want the interface rather than free functions.
type Default struct{}

func (Default) Bind(coreID int) error  { return Bind(coreID) }
func (Default) CoreInfo() api.CoreInfo { return CoreInfo() }

var _ api.Binder = Default{}

func warnOnceFor(reason string) {
	onceAny, _ := warnOnce.LoadOrStore(reason, &sync.Once{})
	onceAny.(*sync.Once).Do(func() {
		diag.Logger.Warn().Str("reason", reason).Msg("affinity: binding failed, continuing unpinned")
	})
}
