package types

import "testing"

func TestEdgeFrom(t *testing.T) {
	if EdgeFrom(false, true) != EdgeRising || EdgeFrom(true, false) != EdgeFalling {
		t.Fatal("transition misclassified")
	}
	if EdgeFrom(true, true) != EdgeNone || EdgeFrom(false, false) != EdgeNone {
		t.Fatal("steady level reported as edge")
	}
}

func TestEdgeWants(t *testing.T) {
	tests := []struct {
		cfg, seen Edge
		want      bool
	}{
		{EdgeFalling, EdgeFalling, true},
		{EdgeFalling, EdgeRising, false},
		{EdgeRising, EdgeRising, true},
		{EdgeBoth, EdgeRising, true},
		{EdgeBoth, EdgeFalling, true},
		{EdgeBoth, EdgeNone, false},
		{EdgeNone, EdgeFalling, false},
	}
	for _, tc := range tests {
		if got := tc.cfg.Wants(tc.seen); got != tc.want {
			t.Fatalf("%s.Wants(%s)=%v want %v", tc.cfg, tc.seen, got, tc.want)
		}
	}
}
