//go:build !race

package collective_test

import "testing"

func skipRace(tb testing.TB) { tb.Helper() }
