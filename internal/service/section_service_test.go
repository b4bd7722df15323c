package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"shipyard/internal/model"
)

func newSectionFixture(t *testing.T) SectionService {
	t.Helper()
	projects := &memProjectRepo{items: map[uint]model.Project{
		1: {ID: 1, ProjectName: "H1023", ShipTypeID: 1},
	}}
	typicalSections := &memTypicalSectionRepo{items: map[uint]model.TypicalSection{
		1: {ID: 1, ShipTypeID: 1, SectionName: "Double Bottom", IsActive: true},
	}}
	return NewSectionService(newMemSectionRepo(), projects, typicalSections, nil)
}

func TestCreateSectionComputesOnBlockCycle(t *testing.T) {
	svc := newSectionFixture(t)

	resp, err := svc.CreateSection(context.Background(), SectionRequest{
		SectionNumber:    "H1023-DB-01",
		ProjectID:        1,
		TypicalSectionID: 1,
		OnBlockDate:      "2024-01-01",
		OffBlockDate:     "2024-01-11",
	}, "E0001")
	if err != nil {
		t.Fatalf("CreateSection: %v", err)
	}

	if resp.OnBlockCycleDays != 10 {
		t.Errorf("on-block cycle = %d days, want 10", resp.OnBlockCycleDays)
	}
	if resp.OnBlockDate == nil || *resp.OnBlockDate != "2024-01-01" {
		t.Errorf("on-block date = %v, want 2024-01-01", resp.OnBlockDate)
	}
}

func TestCreateSectionCycleZeroWhenDatesMissing(t *testing.T) {
	svc := newSectionFixture(t)

	resp, err := svc.CreateSection(context.Background(), SectionRequest{
		SectionNumber:    "H1023-DB-02",
		ProjectID:        1,
		TypicalSectionID: 1,
		OnBlockDate:      "2024-01-01", // no off-block yet
	}, "E0001")
	if err != nil {
		t.Fatalf("CreateSection: %v", err)
	}

	if resp.OnBlockCycleDays != 0 {
		t.Errorf("on-block cycle = %d days, want 0 with an open cycle", resp.OnBlockCycleDays)
	}
	if resp.OffBlockDate != nil {
		t.Errorf("off-block date = %v, want nil", *resp.OffBlockDate)
	}
	if resp.PlannedStartDate != nil {
		t.Errorf("planned start = %v, want nil", *resp.PlannedStartDate)
	}
}

func TestCreateSectionStoresMalformedDateAbsent(t *testing.T) {
	svc := newSectionFixture(t)

	for i, bad := range []string{"not-a-date", "01/02/2024", "2024-13-01", "2024-1-1"} {
		resp, err := svc.CreateSection(context.Background(), SectionRequest{
			SectionNumber:    fmt.Sprintf("H1023-DB-%02d", i+10),
			ProjectID:        1,
			TypicalSectionID: 1,
			OnBlockDate:      bad,
			OffBlockDate:     "2024-01-11",
		}, "E0001")
		if err != nil {
			t.Fatalf("on_block_date %q: unparsable optional date must not reject the save: %v", bad, err)
		}
		if resp.OnBlockDate != nil {
			t.Errorf("on_block_date %q stored as %v, want absent", bad, *resp.OnBlockDate)
		}
		if resp.OnBlockCycleDays != 0 {
			t.Errorf("on_block_date %q: cycle = %d days, want 0 with the date absent", bad, resp.OnBlockCycleDays)
		}
	}
}

func TestCreateSectionRejectsUnknownProject(t *testing.T) {
	svc := newSectionFixture(t)

	_, err := svc.CreateSection(context.Background(), SectionRequest{
		SectionNumber:    "H9999-DB-01",
		ProjectID:        99,
		TypicalSectionID: 1,
	}, "E0001")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateSectionRejectsUnknownTypicalSection(t *testing.T) {
	svc := newSectionFixture(t)

	_, err := svc.CreateSection(context.Background(), SectionRequest{
		SectionNumber:    "H1023-XX-01",
		ProjectID:        1,
		TypicalSectionID: 99,
	}, "E0001")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUpdateSectionReplacesDates(t *testing.T) {
	svc := newSectionFixture(t)

	created, err := svc.CreateSection(context.Background(), SectionRequest{
		SectionNumber:    "H1023-DB-01",
		ProjectID:        1,
		TypicalSectionID: 1,
		OnBlockDate:      "2024-01-01",
	}, "E0001")
	if err != nil {
		t.Fatalf("CreateSection: %v", err)
	}

	updated, err := svc.UpdateSection(context.Background(), created.ID, SectionRequest{
		SectionNumber:    "H1023-DB-01",
		ProjectID:        1,
		TypicalSectionID: 1,
		OnBlockDate:      "2024-01-01",
		OffBlockDate:     "2024-01-15",
		ModelReceived:    true,
	}, "E0001")
	if err != nil {
		t.Fatalf("UpdateSection: %v", err)
	}

	if updated.OnBlockCycleDays != 14 {
		t.Errorf("on-block cycle = %d days, want 14", updated.OnBlockCycleDays)
	}
	if !updated.ModelReceived {
		t.Error("model_received flag lost on update")
	}
}

func TestGetSectionNotFound(t *testing.T) {
	svc := newSectionFixture(t)

	_, err := svc.GetSection(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
