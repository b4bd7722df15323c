package model

import (
	"testing"
	"time"
)

func date(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad date literal %q: %v", value, err)
	}
	return &parsed
}

func TestSectionOnBlockCycleDays(t *testing.T) {
	cases := []struct {
		name     string
		onBlock  *time.Time
		offBlock *time.Time
		want     int
	}{
		{"both dates set", date(t, "2024-01-01"), date(t, "2024-01-11"), 10},
		{"same day", date(t, "2024-01-01"), date(t, "2024-01-01"), 0},
		{"no off-block", date(t, "2024-01-01"), nil, 0},
		{"no on-block", nil, date(t, "2024-01-11"), 0},
		{"no dates", nil, nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Section{OnBlockDate: tc.onBlock, OffBlockDate: tc.offBlock}
			if got := s.OnBlockCycleDays(); got != tc.want {
				t.Errorf("OnBlockCycleDays() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestProjectDeliveryYear(t *testing.T) {
	if got := (Project{}).DeliveryYear(); got != 0 {
		t.Errorf("DeliveryYear() without a date = %d, want 0", got)
	}
	p := Project{DeliveryDate: date(t, "2026-06-30")}
	if got := p.DeliveryYear(); got != 2026 {
		t.Errorf("DeliveryYear() = %d, want 2026", got)
	}
}

func TestPermissionCode(t *testing.T) {
	p := Permission{Module: ModuleWorkProcess, Action: ActionEdit}
	if got := p.Code(); got != "work_process.edit" {
		t.Errorf("Code() = %q, want work_process.edit", got)
	}
}
