//go:build race

package memgroup_test

import "testing"

// skipRace skips tests that drive the lfq SPSC transport. The race detector
// tracks happens-before per variable and cannot see SPSC's cross-variable
// memory ordering, producing false positives.
func skipRace(tb testing.TB) {
	tb.Helper()
	tb.Skip("skip: SPSC uses cross-variable memory ordering")
}
