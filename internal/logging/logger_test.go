package logging

import "testing"

func TestNopBeforeInitialize(t *testing.T) {
	// Must not panic even if nothing was initialized.
	L().Debug("pre-init message")
	Sync()
}

func TestInitializeAssignsRunID(t *testing.T) {
	if err := Initialize(true); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if RunID() == "" {
		t.Error("expected non-empty run ID after Initialize")
	}
	L().Debug("post-init message")
	Sync()
}
