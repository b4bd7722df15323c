package service

import (
	"context"
	"errors"
	"testing"

	"shipyard/internal/model"

	"go.uber.org/zap"
)

func newWorkProcessFixture(t *testing.T) (WorkProcessService, *memWorkProcessRepo) {
	t.Helper()
	workTypes := &memWorkTypeRepo{items: map[uint]model.WorkType{
		1: {ID: 1, WorkTypeName: "Welder", WorkTypeCode: "W", StandardHours: dec(t, "8.00"), IsActive: true},
	}}
	repo := newMemWorkProcessRepo()
	return NewWorkProcessService(repo, workTypes, zap.NewNop(), nil), repo
}

func TestDeriveWorkHours(t *testing.T) {
	cases := []struct {
		standard    string
		coefficient string
		want        string
	}{
		{"8.00", "1.50", "12.00"},
		{"8.00", "1.00", "8.00"},
		{"8.00", "0.80", "6.40"},
		{"7.25", "1.20", "8.70"},
		{"8.00", "0.00", "0.00"},
	}
	for _, tc := range cases {
		got := DeriveWorkHours(dec(t, tc.standard), dec(t, tc.coefficient))
		if got.StringFixed(2) != tc.want {
			t.Errorf("DeriveWorkHours(%s, %s) = %s, want %s", tc.standard, tc.coefficient, got.StringFixed(2), tc.want)
		}
	}
}

func TestCreateWorkProcessDerivesHours(t *testing.T) {
	svc, _ := newWorkProcessFixture(t)

	resp, err := svc.CreateWorkProcess(context.Background(), WorkProcessRequest{
		ProcessName: "Flat position welding",
		ProcessCode: "HB001",
		WorkTypeID:  1,
		Coefficient: "1.50",
		IsActive:    true,
	}, "E0001")
	if err != nil {
		t.Fatalf("CreateWorkProcess: %v", err)
	}

	if resp.WorkHours == nil {
		t.Fatal("work hours not derived")
	}
	if *resp.WorkHours != "12.00" {
		t.Errorf("work hours = %s, want 12.00 (8.00 × 1.50)", *resp.WorkHours)
	}
	if resp.Coefficient != "1.50" {
		t.Errorf("coefficient = %s, want 1.50", resp.Coefficient)
	}
}

func TestCreateWorkProcessWithoutWorkType(t *testing.T) {
	svc, _ := newWorkProcessFixture(t)

	resp, err := svc.CreateWorkProcess(context.Background(), WorkProcessRequest{
		ProcessName: "General handling",
		ProcessCode: "XN001",
		Coefficient: "1.00",
		IsActive:    true,
	}, "E0001")
	if err != nil {
		t.Fatalf("CreateWorkProcess: %v", err)
	}

	if resp.WorkTypeID != nil {
		t.Errorf("work type id = %v, want nil", *resp.WorkTypeID)
	}
	if resp.WorkHours != nil {
		t.Errorf("work hours = %v, want nil without a work type", *resp.WorkHours)
	}
}

func TestCreateWorkProcessRejectsBadCoefficient(t *testing.T) {
	svc, _ := newWorkProcessFixture(t)

	_, err := svc.CreateWorkProcess(context.Background(), WorkProcessRequest{
		ProcessName: "Flat position welding",
		ProcessCode: "HB001",
		WorkTypeID:  1,
		Coefficient: "fast",
	}, "E0001")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateWorkProcessRejectsUnknownWorkType(t *testing.T) {
	svc, _ := newWorkProcessFixture(t)

	_, err := svc.CreateWorkProcess(context.Background(), WorkProcessRequest{
		ProcessName: "Flat position welding",
		ProcessCode: "HB001",
		WorkTypeID:  99,
		Coefficient: "1.50",
	}, "E0001")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUpdateWorkProcessRederivesHours(t *testing.T) {
	svc, _ := newWorkProcessFixture(t)

	created, err := svc.CreateWorkProcess(context.Background(), WorkProcessRequest{
		ProcessName: "Flat position welding",
		ProcessCode: "HB001",
		WorkTypeID:  1,
		Coefficient: "1.50",
		IsActive:    true,
	}, "E0001")
	if err != nil {
		t.Fatalf("CreateWorkProcess: %v", err)
	}

	updated, err := svc.UpdateWorkProcess(context.Background(), created.ID, WorkProcessRequest{
		ProcessName: "Flat position welding",
		ProcessCode: "HB001",
		WorkTypeID:  1,
		Coefficient: "2.00",
		IsActive:    true,
	}, "E0001")
	if err != nil {
		t.Fatalf("UpdateWorkProcess: %v", err)
	}

	if updated.WorkHours == nil || *updated.WorkHours != "16.00" {
		t.Errorf("work hours after update = %v, want 16.00", updated.WorkHours)
	}
}

func TestUpdateWorkProcessClearingWorkTypeClearsHours(t *testing.T) {
	svc, _ := newWorkProcessFixture(t)

	created, err := svc.CreateWorkProcess(context.Background(), WorkProcessRequest{
		ProcessName: "Flat position welding",
		ProcessCode: "HB001",
		WorkTypeID:  1,
		Coefficient: "1.50",
		IsActive:    true,
	}, "E0001")
	if err != nil {
		t.Fatalf("CreateWorkProcess: %v", err)
	}

	updated, err := svc.UpdateWorkProcess(context.Background(), created.ID, WorkProcessRequest{
		ProcessName: "Flat position welding",
		ProcessCode: "HB001",
		Coefficient: "1.50",
		IsActive:    true,
	}, "E0001")
	if err != nil {
		t.Fatalf("UpdateWorkProcess: %v", err)
	}

	if updated.WorkHours != nil {
		t.Errorf("work hours = %v, want nil after the work type was cleared", *updated.WorkHours)
	}
}

func TestGetWorkProcessNotFound(t *testing.T) {
	svc, _ := newWorkProcessFixture(t)

	_, err := svc.GetWorkProcess(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteWorkProcessRemovesRow(t *testing.T) {
	svc, repo := newWorkProcessFixture(t)

	created, err := svc.CreateWorkProcess(context.Background(), WorkProcessRequest{
		ProcessName: "Flat position welding",
		ProcessCode: "HB001",
		WorkTypeID:  1,
		Coefficient: "1.50",
		IsActive:    true,
	}, "E0001")
	if err != nil {
		t.Fatalf("CreateWorkProcess: %v", err)
	}

	if err := svc.DeleteWorkProcess(context.Background(), created.ID, "E0001"); err != nil {
		t.Fatalf("DeleteWorkProcess: %v", err)
	}
	if _, ok := repo.items[created.ID]; ok {
		t.Error("work process row still present after delete")
	}
}
