package sync

import (
	"testing"
	"time"
)

func TestStrictlyNewer(t *testing.T) {
	earlier := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Hour)

	tests := []struct {
		name string
		a    *time.Time
		b    *time.Time
		want bool
	}{
		{"later beats earlier", &later, &earlier, true},
		{"earlier loses to later", &earlier, &later, false},
		{"equal instants favor neither", &earlier, &earlier, false},
		{"any time beats never-recorded", &earlier, nil, true},
		{"nil is never newer", nil, &earlier, false},
		{"both nil", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StrictlyNewer(tt.a, tt.b); got != tt.want {
				t.Errorf("StrictlyNewer = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStrictlyNewerIsAntisymmetric(t *testing.T) {
	a := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	b := a.Add(time.Minute)

	// At most one direction wins, so two peers comparing the same pair
	// of timestamps can never both decide to overwrite.
	if StrictlyNewer(&a, &b) && StrictlyNewer(&b, &a) {
		t.Error("both directions claim to be newer")
	}
	if StrictlyNewer(&a, &a) || StrictlyNewer(&b, &b) {
		t.Error("a timestamp is newer than itself")
	}
}
