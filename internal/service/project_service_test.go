package service

import (
	"context"
	"errors"
	"testing"

	"shipyard/internal/model"
)

type projectFixture struct {
	svc      ProjectService
	projects *memProjectRepo
	sections *memSectionRepo
	pallets  *memPalletRepo
}

func newProjectFixture(t *testing.T) *projectFixture {
	t.Helper()

	pallets := newMemPalletRepo()
	sections := newMemSectionRepo()
	sections.pallets = pallets
	projects := &memProjectRepo{
		items: map[uint]model.Project{
			1: {ID: 1, ProjectName: "H1023", ShipTypeID: 1},
			2: {ID: 2, ProjectName: "H1024", ShipTypeID: 1},
		},
		nextID:   2,
		sections: sections,
		pallets:  pallets,
	}
	shipTypes := &memShipTypeRepo{items: map[uint]model.ShipType{
		1: {ID: 1, ShipType: "Bulk Carrier", ShipSubtype: "Panamax"},
	}}

	sections.items[1] = model.Section{ID: 1, SectionNumber: "H1023-DB-01", ProjectID: 1, TypicalSectionID: 1}
	sections.items[2] = model.Section{ID: 2, SectionNumber: "H1023-DB-02", ProjectID: 1, TypicalSectionID: 1}
	sections.items[3] = model.Section{ID: 3, SectionNumber: "H1024-DB-01", ProjectID: 2, TypicalSectionID: 1}
	sections.nextID = 3

	pallets.items[1] = model.Pallet{ID: 1, PalletCode: "PAL-001", ProjectID: 1, SectionID: 1}
	pallets.items[2] = model.Pallet{ID: 2, PalletCode: "PAL-002", ProjectID: 1, SectionID: 2}
	pallets.items[3] = model.Pallet{ID: 3, PalletCode: "PAL-003", ProjectID: 2, SectionID: 3}
	pallets.nextID = 3

	return &projectFixture{
		svc:      NewProjectService(projects, shipTypes, nil),
		projects: projects,
		sections: sections,
		pallets:  pallets,
	}
}

func TestDeleteProjectCascadesSectionsAndPallets(t *testing.T) {
	f := newProjectFixture(t)

	if err := f.svc.DeleteProject(context.Background(), 1, "admin"); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}

	if _, ok := f.projects.items[1]; ok {
		t.Error("project row still present after delete")
	}
	for id, section := range f.sections.items {
		if section.ProjectID == 1 {
			t.Errorf("orphaned section %d (%s) survived the project delete", id, section.SectionNumber)
		}
	}
	for id, pallet := range f.pallets.items {
		if pallet.ProjectID == 1 {
			t.Errorf("orphaned pallet %d (%s) survived the project delete", id, pallet.PalletCode)
		}
	}

	// The neighbouring project keeps its dependents.
	if len(f.sections.items) != 1 || len(f.pallets.items) != 1 {
		t.Errorf("other project's dependents affected: %d sections, %d pallets remain, want 1 and 1",
			len(f.sections.items), len(f.pallets.items))
	}
}

func TestCreateProjectParsesDeliveryDate(t *testing.T) {
	f := newProjectFixture(t)

	resp, err := f.svc.CreateProject(context.Background(), ProjectRequest{
		ProjectName:  "H1025",
		ShipTypeID:   1,
		DeliveryDate: "2027-03-31",
	}, "admin")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if resp.DeliveryDate == nil || *resp.DeliveryDate != "2027-03-31" {
		t.Errorf("delivery_date = %v, want 2027-03-31", resp.DeliveryDate)
	}
	if resp.DeliveryYear != 2027 {
		t.Errorf("delivery_year = %d, want 2027", resp.DeliveryYear)
	}
}

func TestCreateProjectStoresMalformedDeliveryDateAbsent(t *testing.T) {
	f := newProjectFixture(t)

	resp, err := f.svc.CreateProject(context.Background(), ProjectRequest{
		ProjectName:  "H1026",
		ShipTypeID:   1,
		DeliveryDate: "31/03/2027",
	}, "admin")
	if err != nil {
		t.Fatalf("unparsable optional date must not reject the save: %v", err)
	}
	if resp.DeliveryDate != nil {
		t.Errorf("delivery_date stored as %v, want absent", *resp.DeliveryDate)
	}
	if resp.DeliveryYear != 0 {
		t.Errorf("delivery_year = %d, want 0 without a date", resp.DeliveryYear)
	}
}

func TestCreateProjectRejectsUnknownShipType(t *testing.T) {
	f := newProjectFixture(t)

	_, err := f.svc.CreateProject(context.Background(), ProjectRequest{
		ProjectName: "H1027",
		ShipTypeID:  99,
	}, "admin")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
