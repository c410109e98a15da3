package process

// Notes:
// - Real kill behavior is covered by the browser export integration tests;
//   unit tests cannot safely terminate real processes.

import "testing"

// ---------------------------------------------------------------------------
// TestKillProcessGroup - Invalid PID Handling
// ---------------------------------------------------------------------------

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pid  int
	}{
		{"never started launcher", 0},
		{"negative pid", -1},
		{"nonexistent pid", 999999999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Must return without panicking or touching the test's own group.
			KillProcessGroup(tt.pid)
		})
	}
}
