//go:build !race

package memgroup_test

import "testing"

func skipRace(tb testing.TB) { tb.Helper() }
