package status

import "testing"

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Kind
		wantMsg  string
	}{
		{
			name:     "empty input is vacuously active",
			statuses: nil,
			want:     Active,
		},
		{
			name:     "all active",
			statuses: []Status{ActiveStatus(), ActiveStatus()},
			want:     Active,
		},
		{
			name:     "waiting beats maintenance",
			statuses: []Status{Maintenancef("setting up"), Waitingf("not leader")},
			want:     Waiting,
			wantMsg:  "not leader",
		},
		{
			name: "blocked beats everything",
			statuses: []Status{
				ActiveStatus(),
				Waitingf("no versions"),
				Blockedf("bad mode"),
				Maintenancef("applying"),
			},
			want:    Blocked,
			wantMsg: "bad mode",
		},
		{
			name:     "first of equal severity wins",
			statuses: []Status{Blockedf("first"), Blockedf("second")},
			want:     Blocked,
			wantMsg:  "first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.statuses)
			if got.Kind != tt.want {
				t.Errorf("Aggregate() kind = %v, want %v", got.Kind, tt.want)
			}
			if got.Message != tt.wantMsg {
				t.Errorf("Aggregate() message = %q, want %q", got.Message, tt.wantMsg)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	if got := ActiveStatus().String(); got != "Active" {
		t.Errorf("String() = %q, want %q", got, "Active")
	}
	if got := Blockedf("no backend").String(); got != "Blocked: no backend" {
		t.Errorf("String() = %q, want %q", got, "Blocked: no backend")
	}
}
