package service

import (
	"context"
	"errors"
	"testing"

	"shipyard/internal/model"
)

func newPalletFixture(t *testing.T) (PalletService, *recordingBroadcaster) {
	t.Helper()
	projects := &memProjectRepo{items: map[uint]model.Project{
		1: {ID: 1, ProjectName: "H1023", ShipTypeID: 1},
		2: {ID: 2, ProjectName: "H1024", ShipTypeID: 1},
	}}
	sections := newMemSectionRepo()
	sections.items[1] = model.Section{ID: 1, SectionNumber: "H1023-DB-01", ProjectID: 1, TypicalSectionID: 1}
	sections.items[2] = model.Section{ID: 2, SectionNumber: "H1024-DB-01", ProjectID: 2, TypicalSectionID: 1}
	sections.nextID = 2

	events := &recordingBroadcaster{}
	return NewPalletService(newMemPalletRepo(), projects, sections, events, nil), events
}

func TestUpdatePalletBroadcastsOnReceivedTransition(t *testing.T) {
	svc, events := newPalletFixture(t)

	created, err := svc.CreatePallet(context.Background(), PalletRequest{
		PalletCode: "PAL-001", ProjectID: 1, SectionID: 1,
	}, "E0001")
	if err != nil {
		t.Fatalf("CreatePallet: %v", err)
	}
	if len(events.events) != 0 {
		t.Fatalf("unexpected broadcast for an unreceived pallet: %+v", events.events)
	}

	if _, err := svc.UpdatePallet(context.Background(), created.ID, PalletRequest{
		PalletCode: "PAL-001", ProjectID: 1, SectionID: 1, IsReceived: true,
	}, "E0001"); err != nil {
		t.Fatalf("UpdatePallet: %v", err)
	}

	if len(events.events) != 1 {
		t.Fatalf("broadcasts = %d, want 1 on the received transition", len(events.events))
	}
	if events.events[0].event != "pallet.received" {
		t.Errorf("event = %q, want pallet.received", events.events[0].event)
	}

	// Saving an already-received pallet again must stay quiet.
	if _, err := svc.UpdatePallet(context.Background(), created.ID, PalletRequest{
		PalletCode: "PAL-001", ProjectID: 1, SectionID: 1, IsReceived: true, Description: "relabeled",
	}, "E0001"); err != nil {
		t.Fatalf("UpdatePallet: %v", err)
	}
	if len(events.events) != 1 {
		t.Errorf("broadcasts = %d, want still 1 after a no-transition update", len(events.events))
	}
}

func TestCreatePalletReceivedBroadcastsImmediately(t *testing.T) {
	svc, events := newPalletFixture(t)

	if _, err := svc.CreatePallet(context.Background(), PalletRequest{
		PalletCode: "PAL-002", ProjectID: 1, SectionID: 1, IsReceived: true,
	}, "E0001"); err != nil {
		t.Fatalf("CreatePallet: %v", err)
	}
	if len(events.events) != 1 || events.events[0].event != "pallet.received" {
		t.Errorf("events = %+v, want one pallet.received", events.events)
	}
}

func TestCreatePalletRejectsSectionOfOtherProject(t *testing.T) {
	svc, _ := newPalletFixture(t)

	_, err := svc.CreatePallet(context.Background(), PalletRequest{
		PalletCode: "PAL-003", ProjectID: 1, SectionID: 2, // section belongs to project 2
	}, "E0001")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreatePalletStoresMalformedRequiredDateAbsent(t *testing.T) {
	svc, _ := newPalletFixture(t)

	resp, err := svc.CreatePallet(context.Background(), PalletRequest{
		PalletCode: "PAL-004", ProjectID: 1, SectionID: 1, RequiredDate: "04/15/2024",
	}, "E0001")
	if err != nil {
		t.Fatalf("unparsable optional date must not reject the save: %v", err)
	}
	if resp.RequiredDate != nil {
		t.Errorf("required_date stored as %v, want absent", *resp.RequiredDate)
	}

	parsed, err := svc.CreatePallet(context.Background(), PalletRequest{
		PalletCode: "PAL-005", ProjectID: 1, SectionID: 1, RequiredDate: "2024-04-15",
	}, "E0001")
	if err != nil {
		t.Fatalf("CreatePallet: %v", err)
	}
	if parsed.RequiredDate == nil || *parsed.RequiredDate != "2024-04-15" {
		t.Errorf("required_date = %v, want 2024-04-15", parsed.RequiredDate)
	}
}
