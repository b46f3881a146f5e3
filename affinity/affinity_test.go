package affinity

import "testing"

func TestCoreInfoReportsAtLeastOneCore(t *testing.T) {
	info := CoreInfo()
	if info.Total() < 1 {
		t.Fatalf("expected at least one core, got %+v", info)
	}
}

func TestBindFailureIsNonFatal(t *testing.T) {
	// Binding to an absurd core id must return an error, never panic, on
	// every platform this package supports.
	err := Bind(1 << 20)
	_ = err // non-fatal by contract; we only assert it doesn't panic
}

func TestDefaultImplementsBinder(t *testing.T) {
	var d Default
	_ = d.CoreInfo()
}
