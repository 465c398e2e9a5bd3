package core_test

import (
	"testing"

	"ibms-backend/internal/core"
)

func TestEvaluateLowStock(t *testing.T) {
	cases := []struct {
		name        string
		quantity    int
		alertSent   bool
		wantLatched bool
		wantNotify  bool
	}{
		{"well stocked", 10, false, false, false},
		{"at threshold", 2, false, false, false},
		{"at threshold clears latch", 2, true, false, false},
		{"drops below, first time", 1, false, true, true},
		{"drops to zero, first time", 0, false, true, true},
		{"already latched stays quiet", 1, true, true, false},
		{"zero and latched stays quiet", 0, true, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			latched, notify := core.EvaluateLowStock(tc.quantity, tc.alertSent)
			if latched != tc.wantLatched || notify != tc.wantNotify {
				t.Errorf("EvaluateLowStock(%d, %v) = (%v, %v), want (%v, %v)",
					tc.quantity, tc.alertSent, latched, notify, tc.wantLatched, tc.wantNotify)
			}
		})
	}
}
