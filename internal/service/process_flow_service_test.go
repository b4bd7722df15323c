package service

import (
	"context"
	"errors"
	"testing"

	"shipyard/internal/model"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

type flowFixture struct {
	svc       ProcessFlowService
	flows     *memProcessFlowRepo
	processes *memWorkProcessRepo
	events    *recordingBroadcaster
}

// newFlowFixture wires a flow service over the in-memory fakes. Work process
// 1 carries derived hours of 12.00, work process 2 has none.
func newFlowFixture(t *testing.T) *flowFixture {
	t.Helper()

	flows := newMemProcessFlowRepo()
	processes := newMemWorkProcessRepo()

	shipTypes := &memShipTypeRepo{items: map[uint]model.ShipType{
		1: {ID: 1, ShipType: "Bulk Carrier", ShipSubtype: "Panamax"},
		2: {ID: 2, ShipType: "Container Ship", ShipSubtype: "Large"},
	}}
	sections := &memTypicalSectionRepo{items: map[uint]model.TypicalSection{
		1: {ID: 1, ShipTypeID: 1, SectionName: "Double Bottom", SectionCode: "DB001", IsActive: true},
		2: {ID: 2, ShipTypeID: 2, SectionName: "Cargo Hold", SectionCode: "CH001", IsActive: true},
	}}

	weldingHours := dec(t, "12.00")
	processes.items[1] = model.WorkProcess{ID: 1, ProcessName: "Flat position welding", ProcessCode: "HB001", Coefficient: dec(t, "1.50"), WorkHours: &weldingHours, IsActive: true}
	processes.items[2] = model.WorkProcess{ID: 2, ProcessName: "Tack welding", ProcessCode: "DH001", Coefficient: dec(t, "1.00"), IsActive: true}
	processes.nextID = 2

	events := &recordingBroadcaster{}
	svc := NewProcessFlowService(flows, processes, shipTypes, sections, passTxManager{}, events, zap.NewNop(), nil)
	return &flowFixture{svc: svc, flows: flows, processes: processes, events: events}
}

func (f *flowFixture) mustCreateFlow(t *testing.T, name string) *ProcessFlowResponse {
	t.Helper()
	flow, err := f.svc.CreateFlow(context.Background(), ProcessFlowRequest{
		ShipTypeID:       1,
		TypicalSectionID: 1,
		FlowName:         name,
	}, "E0001")
	if err != nil {
		t.Fatalf("CreateFlow(%q): %v", name, err)
	}
	return flow
}

func stepByOrder(t *testing.T, flow *ProcessFlowResponse, order int) FlowStepResponse {
	t.Helper()
	for _, step := range flow.Steps {
		if step.StepOrder == order {
			return step
		}
	}
	t.Fatalf("flow %d has no step with order %d", flow.ID, order)
	return FlowStepResponse{}
}

func TestCreateFlowRejectsSectionOfOtherShipType(t *testing.T) {
	f := newFlowFixture(t)

	_, err := f.svc.CreateFlow(context.Background(), ProcessFlowRequest{
		ShipTypeID:       1,
		TypicalSectionID: 2, // belongs to ship type 2
		FlowName:         "Mismatched",
	}, "E0001")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateFlowRejectsUnknownShipType(t *testing.T) {
	f := newFlowFixture(t)

	_, err := f.svc.CreateFlow(context.Background(), ProcessFlowRequest{
		ShipTypeID:       99,
		TypicalSectionID: 1,
		FlowName:         "Ghost ship",
	}, "E0001")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAddStepDefaultsHoursFromWorkProcess(t *testing.T) {
	f := newFlowFixture(t)
	flow := f.mustCreateFlow(t, "Double bottom standard")

	detail, err := f.svc.AddStep(context.Background(), flow.ID, FlowStepRequest{
		StepName:      "Weld bottom plates",
		WorkProcessID: 1,
		StepOrder:     1,
	}, "E0001")
	if err != nil {
		t.Fatalf("AddStep: %v", err)
	}

	step := stepByOrder(t, detail, 1)
	if step.EstimatedHours != "12.00" {
		t.Errorf("step hours = %s, want 12.00 (work process default)", step.EstimatedHours)
	}
	if detail.EstimatedTotalHours != "12.00" {
		t.Errorf("flow total = %s, want 12.00", detail.EstimatedTotalHours)
	}
}

func TestAddStepZeroHoursWhenProcessHasNone(t *testing.T) {
	f := newFlowFixture(t)
	flow := f.mustCreateFlow(t, "Double bottom standard")

	detail, err := f.svc.AddStep(context.Background(), flow.ID, FlowStepRequest{
		StepName:      "Tack joints",
		WorkProcessID: 2, // no derived hours
		StepOrder:     1,
	}, "E0001")
	if err != nil {
		t.Fatalf("AddStep: %v", err)
	}

	if got := stepByOrder(t, detail, 1).EstimatedHours; got != "0.00" {
		t.Errorf("step hours = %s, want 0.00", got)
	}
}

func TestAddStepSuppliedHoursOverrideDefault(t *testing.T) {
	f := newFlowFixture(t)
	flow := f.mustCreateFlow(t, "Double bottom standard")

	detail, err := f.svc.AddStep(context.Background(), flow.ID, FlowStepRequest{
		StepName:       "Weld bottom plates",
		WorkProcessID:  1,
		StepOrder:      1,
		EstimatedHours: "5.5",
	}, "E0001")
	if err != nil {
		t.Fatalf("AddStep: %v", err)
	}

	if got := stepByOrder(t, detail, 1).EstimatedHours; got != "5.50" {
		t.Errorf("step hours = %s, want 5.50", got)
	}
	if detail.EstimatedTotalHours != "5.50" {
		t.Errorf("flow total = %s, want 5.50", detail.EstimatedTotalHours)
	}
}

func TestAddStepRejectsDuplicateOrder(t *testing.T) {
	f := newFlowFixture(t)
	flow := f.mustCreateFlow(t, "Double bottom standard")

	if _, err := f.svc.AddStep(context.Background(), flow.ID, FlowStepRequest{
		StepName: "First", WorkProcessID: 1, StepOrder: 1,
	}, "E0001"); err != nil {
		t.Fatalf("AddStep: %v", err)
	}

	_, err := f.svc.AddStep(context.Background(), flow.ID, FlowStepRequest{
		StepName: "Second", WorkProcessID: 2, StepOrder: 1,
	}, "E0001")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for duplicate order, got %v", err)
	}
}

func TestAddStepRejectsUnknownWorkProcess(t *testing.T) {
	f := newFlowFixture(t)
	flow := f.mustCreateFlow(t, "Double bottom standard")

	_, err := f.svc.AddStep(context.Background(), flow.ID, FlowStepRequest{
		StepName: "Mystery", WorkProcessID: 99, StepOrder: 1,
	}, "E0001")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAddStepBroadcastsTotalUpdate(t *testing.T) {
	f := newFlowFixture(t)
	flow := f.mustCreateFlow(t, "Double bottom standard")

	if _, err := f.svc.AddStep(context.Background(), flow.ID, FlowStepRequest{
		StepName: "Weld bottom plates", WorkProcessID: 1, StepOrder: 1,
	}, "E0001"); err != nil {
		t.Fatalf("AddStep: %v", err)
	}

	if len(f.events.events) == 0 {
		t.Fatal("expected a broadcast after adding a step")
	}
	last := f.events.events[len(f.events.events)-1]
	if last.event != "process_flow.total_updated" {
		t.Errorf("event = %q, want process_flow.total_updated", last.event)
	}
	payload, ok := last.payload.(map[string]interface{})
	if !ok {
		t.Fatalf("payload type %T, want map", last.payload)
	}
	if payload["estimated_total_hours"] != "12.00" {
		t.Errorf("broadcast total = %v, want 12.00", payload["estimated_total_hours"])
	}
}

func TestUpdateStepRecomputesTotal(t *testing.T) {
	f := newFlowFixture(t)
	flow := f.mustCreateFlow(t, "Double bottom standard")

	detail, err := f.svc.AddStep(context.Background(), flow.ID, FlowStepRequest{
		StepName: "Weld bottom plates", WorkProcessID: 1, StepOrder: 1,
	}, "E0001")
	if err != nil {
		t.Fatalf("AddStep: %v", err)
	}
	detail, err = f.svc.AddStep(context.Background(), flow.ID, FlowStepRequest{
		StepName: "Fit stiffeners", WorkProcessID: 1, StepOrder: 2, EstimatedHours: "5.50",
	}, "E0001")
	if err != nil {
		t.Fatalf("AddStep: %v", err)
	}
	if detail.EstimatedTotalHours != "17.50" {
		t.Fatalf("flow total = %s, want 17.50", detail.EstimatedTotalHours)
	}

	second := stepByOrder(t, detail, 2)
	detail, err = f.svc.UpdateStep(context.Background(), second.ID, FlowStepRequest{
		StepName: "Fit stiffeners", WorkProcessID: 1, StepOrder: 2, EstimatedHours: "4",
	}, "E0001")
	if err != nil {
		t.Fatalf("UpdateStep: %v", err)
	}
	if detail.EstimatedTotalHours != "16.00" {
		t.Errorf("flow total after update = %s, want 16.00", detail.EstimatedTotalHours)
	}
}

func TestDeleteStepRecomputesTotal(t *testing.T) {
	f := newFlowFixture(t)
	flow := f.mustCreateFlow(t, "Double bottom standard")

	if _, err := f.svc.AddStep(context.Background(), flow.ID, FlowStepRequest{
		StepName: "Weld bottom plates", WorkProcessID: 1, StepOrder: 1,
	}, "E0001"); err != nil {
		t.Fatalf("AddStep: %v", err)
	}
	detail, err := f.svc.AddStep(context.Background(), flow.ID, FlowStepRequest{
		StepName: "Fit stiffeners", WorkProcessID: 1, StepOrder: 2, EstimatedHours: "5.50",
	}, "E0001")
	if err != nil {
		t.Fatalf("AddStep: %v", err)
	}

	second := stepByOrder(t, detail, 2)
	if err := f.svc.DeleteStep(context.Background(), second.ID, "E0001"); err != nil {
		t.Fatalf("DeleteStep: %v", err)
	}

	detail, err = f.svc.GetFlowDetail(context.Background(), flow.ID)
	if err != nil {
		t.Fatalf("GetFlowDetail: %v", err)
	}
	if detail.EstimatedTotalHours != "12.00" {
		t.Errorf("flow total after delete = %s, want 12.00", detail.EstimatedTotalHours)
	}
	if len(detail.Steps) != 1 {
		t.Errorf("steps remaining = %d, want 1", len(detail.Steps))
	}
}

func TestStepCannotBeItsOwnPrerequisite(t *testing.T) {
	f := newFlowFixture(t)
	flow := f.mustCreateFlow(t, "Double bottom standard")

	detail, err := f.svc.AddStep(context.Background(), flow.ID, FlowStepRequest{
		StepName: "Weld bottom plates", WorkProcessID: 1, StepOrder: 1,
	}, "E0001")
	if err != nil {
		t.Fatalf("AddStep: %v", err)
	}

	step := stepByOrder(t, detail, 1)
	_, err = f.svc.UpdateStep(context.Background(), step.ID, FlowStepRequest{
		StepName:            "Weld bottom plates",
		WorkProcessID:       1,
		StepOrder:           1,
		PrerequisiteStepIDs: []uint{step.ID},
	}, "E0001")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestPrerequisiteMustBelongToSameFlow(t *testing.T) {
	f := newFlowFixture(t)
	flowA := f.mustCreateFlow(t, "Double bottom standard")
	flowB := f.mustCreateFlow(t, "Double bottom variant")

	detailB, err := f.svc.AddStep(context.Background(), flowB.ID, FlowStepRequest{
		StepName: "Foreign step", WorkProcessID: 1, StepOrder: 1,
	}, "E0001")
	if err != nil {
		t.Fatalf("AddStep: %v", err)
	}
	foreign := stepByOrder(t, detailB, 1)

	_, err = f.svc.AddStep(context.Background(), flowA.ID, FlowStepRequest{
		StepName:            "Weld bottom plates",
		WorkProcessID:       1,
		StepOrder:           1,
		PrerequisiteStepIDs: []uint{foreign.ID},
	}, "E0001")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for cross-flow prerequisite, got %v", err)
	}
}

func TestDeactivateFlowKeepsRowAndSteps(t *testing.T) {
	f := newFlowFixture(t)
	flow := f.mustCreateFlow(t, "Double bottom standard")

	if _, err := f.svc.AddStep(context.Background(), flow.ID, FlowStepRequest{
		StepName: "Weld bottom plates", WorkProcessID: 1, StepOrder: 1,
	}, "E0001"); err != nil {
		t.Fatalf("AddStep: %v", err)
	}

	if err := f.svc.DeactivateFlow(context.Background(), flow.ID, "E0001"); err != nil {
		t.Fatalf("DeactivateFlow: %v", err)
	}

	stored, ok := f.flows.flows[flow.ID]
	if !ok {
		t.Fatal("flow row was removed; deactivation must keep it")
	}
	if stored.IsActive {
		t.Error("flow still active after deactivation")
	}

	detail, err := f.svc.GetFlowDetail(context.Background(), flow.ID)
	if err != nil {
		t.Fatalf("GetFlowDetail after deactivation: %v", err)
	}
	if len(detail.Steps) != 1 {
		t.Errorf("steps = %d, want 1 (step set survives deactivation)", len(detail.Steps))
	}
}

func TestListFlowsHidesInactiveByDefault(t *testing.T) {
	f := newFlowFixture(t)
	active := f.mustCreateFlow(t, "Active flow")
	retired := f.mustCreateFlow(t, "Retired flow")

	if err := f.svc.DeactivateFlow(context.Background(), retired.ID, "E0001"); err != nil {
		t.Fatalf("DeactivateFlow: %v", err)
	}

	flows, total, err := f.svc.ListFlows(context.Background(), 0, 0, "", false, 1, 10)
	if err != nil {
		t.Fatalf("ListFlows: %v", err)
	}
	if total != 1 || len(flows) != 1 || flows[0].ID != active.ID {
		t.Errorf("default listing = %d flows (total %d), want only the active one", len(flows), total)
	}

	flows, total, err = f.svc.ListFlows(context.Background(), 0, 0, "", true, 1, 10)
	if err != nil {
		t.Fatalf("ListFlows: %v", err)
	}
	if total != 2 || len(flows) != 2 {
		t.Errorf("include-inactive listing = %d flows (total %d), want 2", len(flows), total)
	}
}

func TestReplaceStepsDropsInvalidRows(t *testing.T) {
	f := newFlowFixture(t)
	flow := f.mustCreateFlow(t, "Double bottom standard")

	detail, err := f.svc.ReplaceSteps(context.Background(), flow.ID, ReplaceStepsRequest{
		Steps: []BulkStepRow{
			{StepName: "Fit plates", WorkProcessID: 1, StepOrder: "1", EstimatedHours: "2"},
			{StepName: "Weld seams", WorkProcessID: 1, StepOrder: "2", EstimatedHours: "3"},
			{StepName: "", WorkProcessID: 1, StepOrder: "3"},                                 // no name
			{StepName: "Bad order", WorkProcessID: 1, StepOrder: "abc"},                      // non-numeric order
			{StepName: "Order clash", WorkProcessID: 1, StepOrder: "1"},                      // duplicate order
			{StepName: "Ghost process", WorkProcessID: 99, StepOrder: "4"},                   // unknown process
			{StepName: "Bad hours", WorkProcessID: 1, StepOrder: "5", EstimatedHours: "lots"}, // non-numeric hours
		},
	}, "E0001")
	if err != nil {
		t.Fatalf("ReplaceSteps: %v", err)
	}

	if len(detail.Steps) != 2 {
		t.Fatalf("accepted steps = %d, want 2", len(detail.Steps))
	}
	if detail.EstimatedTotalHours != "5.00" {
		t.Errorf("flow total = %s, want 5.00", detail.EstimatedTotalHours)
	}
	if got := stepByOrder(t, detail, 1).StepName; got != "Fit plates" {
		t.Errorf("first surviving row = %q, want the first submitted order-1 row", got)
	}
}

func TestReplaceStepsLinksPrerequisitesByOrder(t *testing.T) {
	f := newFlowFixture(t)
	flow := f.mustCreateFlow(t, "Double bottom standard")

	detail, err := f.svc.ReplaceSteps(context.Background(), flow.ID, ReplaceStepsRequest{
		Steps: []BulkStepRow{
			{StepName: "Fit plates", WorkProcessID: 1, StepOrder: "1", EstimatedHours: "2"},
			// "7" names no row and "x" is not numeric; both are skipped quietly.
			{StepName: "Weld seams", WorkProcessID: 1, StepOrder: "2", EstimatedHours: "3", PrerequisiteOrders: []string{"1", "7", "x"}},
		},
	}, "E0001")
	if err != nil {
		t.Fatalf("ReplaceSteps: %v", err)
	}

	first := stepByOrder(t, detail, 1)
	second := stepByOrder(t, detail, 2)
	if len(second.PrerequisiteStepIDs) != 1 || second.PrerequisiteStepIDs[0] != first.ID {
		t.Errorf("step 2 prerequisites = %v, want [%d]", second.PrerequisiteStepIDs, first.ID)
	}
	if len(first.PrerequisiteStepIDs) != 0 {
		t.Errorf("step 1 prerequisites = %v, want none", first.PrerequisiteStepIDs)
	}
}

func TestReplaceStepsDiscardsPreviousSet(t *testing.T) {
	f := newFlowFixture(t)
	flow := f.mustCreateFlow(t, "Double bottom standard")

	if _, err := f.svc.AddStep(context.Background(), flow.ID, FlowStepRequest{
		StepName: "Old step", WorkProcessID: 1, StepOrder: 1,
	}, "E0001"); err != nil {
		t.Fatalf("AddStep: %v", err)
	}

	detail, err := f.svc.ReplaceSteps(context.Background(), flow.ID, ReplaceStepsRequest{
		Steps: []BulkStepRow{
			{StepName: "New step", WorkProcessID: 2, StepOrder: "1", EstimatedHours: "1.25"},
		},
	}, "E0001")
	if err != nil {
		t.Fatalf("ReplaceSteps: %v", err)
	}

	if len(detail.Steps) != 1 || detail.Steps[0].StepName != "New step" {
		t.Fatalf("steps after replacement = %+v, want only the new one", detail.Steps)
	}
	if detail.EstimatedTotalHours != "1.25" {
		t.Errorf("flow total = %s, want 1.25", detail.EstimatedTotalHours)
	}
}

func TestReplaceStepsEmptyListClearsFlow(t *testing.T) {
	f := newFlowFixture(t)
	flow := f.mustCreateFlow(t, "Double bottom standard")

	if _, err := f.svc.AddStep(context.Background(), flow.ID, FlowStepRequest{
		StepName: "Old step", WorkProcessID: 1, StepOrder: 1,
	}, "E0001"); err != nil {
		t.Fatalf("AddStep: %v", err)
	}

	detail, err := f.svc.ReplaceSteps(context.Background(), flow.ID, ReplaceStepsRequest{Steps: []BulkStepRow{}}, "E0001")
	if err != nil {
		t.Fatalf("ReplaceSteps: %v", err)
	}
	if len(detail.Steps) != 0 {
		t.Errorf("steps = %d, want 0", len(detail.Steps))
	}
	if detail.EstimatedTotalHours != "0.00" {
		t.Errorf("flow total = %s, want 0.00", detail.EstimatedTotalHours)
	}
}

func TestReplaceStepsUnknownFlow(t *testing.T) {
	f := newFlowFixture(t)

	_, err := f.svc.ReplaceSteps(context.Background(), 404, ReplaceStepsRequest{Steps: []BulkStepRow{}}, "E0001")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
