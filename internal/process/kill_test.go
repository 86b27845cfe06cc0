package process

// Notes:
// - Real kill behavior needs a live browser; only the guard paths are covered here.
// - PID 0 would target the current process group, so non-positive PIDs must be ignored.

import "testing"

func TestKillTree_IgnoresNonPositivePID(t *testing.T) {
	t.Parallel()

	KillTree(0)
	KillTree(-1)
}

func TestKillTree_UnknownPID(t *testing.T) {
	t.Parallel()

	KillTree(999999999)
}
