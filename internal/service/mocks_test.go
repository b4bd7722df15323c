package service

import (
	"context"
	"sort"

	"shipyard/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository fakes for the service tests. They keep the contracts
// the services rely on: gorm.ErrRecordNotFound for missing rows, copy-out
// reads, and step listings ordered by step_order.

type passTxManager struct{}

func (passTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type recordedEvent struct {
	event   string
	payload interface{}
}

type recordingBroadcaster struct {
	events []recordedEvent
}

func (b *recordingBroadcaster) BroadcastEvent(event string, payload interface{}) {
	b.events = append(b.events, recordedEvent{event: event, payload: payload})
}

// --- ship types ---

type memShipTypeRepo struct {
	items map[uint]model.ShipType
}

func (r *memShipTypeRepo) Create(_ context.Context, shipType *model.ShipType) error {
	r.items[shipType.ID] = *shipType
	return nil
}

func (r *memShipTypeRepo) Update(_ context.Context, shipType *model.ShipType) error {
	r.items[shipType.ID] = *shipType
	return nil
}

func (r *memShipTypeRepo) Delete(_ context.Context, id uint) error {
	delete(r.items, id)
	return nil
}

func (r *memShipTypeRepo) FindByID(_ context.Context, id uint) (*model.ShipType, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *memShipTypeRepo) List(_ context.Context, _ string, _, _ int) ([]model.ShipType, int64, error) {
	all, _ := r.ListAll(context.Background())
	return all, int64(len(all)), nil
}

func (r *memShipTypeRepo) ListAll(_ context.Context) ([]model.ShipType, error) {
	out := make([]model.ShipType, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- typical sections ---

type memTypicalSectionRepo struct {
	items map[uint]model.TypicalSection
}

func (r *memTypicalSectionRepo) Create(_ context.Context, section *model.TypicalSection) error {
	r.items[section.ID] = *section
	return nil
}

func (r *memTypicalSectionRepo) Update(_ context.Context, section *model.TypicalSection) error {
	r.items[section.ID] = *section
	return nil
}

func (r *memTypicalSectionRepo) Delete(_ context.Context, id uint) error {
	delete(r.items, id)
	return nil
}

func (r *memTypicalSectionRepo) FindByID(_ context.Context, id uint) (*model.TypicalSection, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *memTypicalSectionRepo) List(_ context.Context, _ uint, _ string, _, _ int) ([]model.TypicalSection, int64, error) {
	out := make([]model.TypicalSection, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

// --- work types ---

type memWorkTypeRepo struct {
	items  map[uint]model.WorkType
	nextID uint
}

func newMemWorkTypeRepo() *memWorkTypeRepo {
	return &memWorkTypeRepo{items: make(map[uint]model.WorkType)}
}

func (r *memWorkTypeRepo) Create(_ context.Context, workType *model.WorkType) error {
	r.nextID++
	workType.ID = r.nextID
	r.items[workType.ID] = *workType
	return nil
}

func (r *memWorkTypeRepo) Update(_ context.Context, workType *model.WorkType) error {
	r.items[workType.ID] = *workType
	return nil
}

func (r *memWorkTypeRepo) Delete(_ context.Context, id uint) error {
	delete(r.items, id)
	return nil
}

func (r *memWorkTypeRepo) FindByID(_ context.Context, id uint) (*model.WorkType, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *memWorkTypeRepo) List(_ context.Context, _ string, _, _ int) ([]model.WorkType, int64, error) {
	out := make([]model.WorkType, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

// --- work processes ---

type memWorkProcessRepo struct {
	items  map[uint]model.WorkProcess
	nextID uint
}

func newMemWorkProcessRepo() *memWorkProcessRepo {
	return &memWorkProcessRepo{items: make(map[uint]model.WorkProcess)}
}

func (r *memWorkProcessRepo) Create(_ context.Context, process *model.WorkProcess) error {
	r.nextID++
	process.ID = r.nextID
	r.items[process.ID] = *process
	return nil
}

func (r *memWorkProcessRepo) Update(_ context.Context, process *model.WorkProcess) error {
	if _, ok := r.items[process.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[process.ID] = *process
	return nil
}

func (r *memWorkProcessRepo) Delete(_ context.Context, id uint) error {
	delete(r.items, id)
	return nil
}

func (r *memWorkProcessRepo) FindByID(_ context.Context, id uint) (*model.WorkProcess, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *memWorkProcessRepo) List(_ context.Context, _ uint, _ string, _, _ int) ([]model.WorkProcess, int64, error) {
	out := make([]model.WorkProcess, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

// --- process flows ---

type memProcessFlowRepo struct {
	flows      map[uint]model.StandardProcessFlow
	steps      map[uint]model.ProcessFlowStep
	prereqs    map[uint][]uint // step id -> prerequisite step ids
	nextFlowID uint
	nextStepID uint
}

func newMemProcessFlowRepo() *memProcessFlowRepo {
	return &memProcessFlowRepo{
		flows:   make(map[uint]model.StandardProcessFlow),
		steps:   make(map[uint]model.ProcessFlowStep),
		prereqs: make(map[uint][]uint),
	}
}

func (r *memProcessFlowRepo) Create(_ context.Context, flow *model.StandardProcessFlow) error {
	r.nextFlowID++
	flow.ID = r.nextFlowID
	r.flows[flow.ID] = *flow
	return nil
}

func (r *memProcessFlowRepo) Update(_ context.Context, flow *model.StandardProcessFlow) error {
	if _, ok := r.flows[flow.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.flows[flow.ID] = *flow
	return nil
}

func (r *memProcessFlowRepo) FindByID(_ context.Context, id uint) (*model.StandardProcessFlow, error) {
	flow, ok := r.flows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &flow, nil
}

func (r *memProcessFlowRepo) FindByIDWithSteps(ctx context.Context, id uint) (*model.StandardProcessFlow, error) {
	flow, ok := r.flows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	steps, err := r.ListSteps(ctx, id)
	if err != nil {
		return nil, err
	}
	flow.Steps = steps
	return &flow, nil
}

func (r *memProcessFlowRepo) List(_ context.Context, _, _ uint, _ string, includeInactive bool, _, _ int) ([]model.StandardProcessFlow, int64, error) {
	out := make([]model.StandardProcessFlow, 0, len(r.flows))
	for _, flow := range r.flows {
		if !includeInactive && !flow.IsActive {
			continue
		}
		out = append(out, flow)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *memProcessFlowRepo) UpdateTotalHours(_ context.Context, flowID uint, total decimal.Decimal) error {
	flow, ok := r.flows[flowID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	flow.EstimatedTotalHours = total
	r.flows[flowID] = flow
	return nil
}

func (r *memProcessFlowRepo) SumEstimatedHours(_ context.Context, flowID uint) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, step := range r.steps {
		if step.FlowID == flowID {
			total = total.Add(step.EstimatedHours)
		}
	}
	return total, nil
}

func (r *memProcessFlowRepo) CreateStep(_ context.Context, step *model.ProcessFlowStep) error {
	r.nextStepID++
	step.ID = r.nextStepID
	r.steps[step.ID] = *step
	return nil
}

func (r *memProcessFlowRepo) UpdateStep(_ context.Context, step *model.ProcessFlowStep) error {
	if _, ok := r.steps[step.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.steps[step.ID] = *step
	return nil
}

func (r *memProcessFlowRepo) DeleteStep(_ context.Context, id uint) error {
	delete(r.steps, id)
	delete(r.prereqs, id)
	for stepID, ids := range r.prereqs {
		kept := ids[:0]
		for _, pid := range ids {
			if pid != id {
				kept = append(kept, pid)
			}
		}
		r.prereqs[stepID] = kept
	}
	return nil
}

func (r *memProcessFlowRepo) FindStepByID(_ context.Context, id uint) (*model.ProcessFlowStep, error) {
	step, ok := r.steps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &step, nil
}

func (r *memProcessFlowRepo) ListSteps(_ context.Context, flowID uint) ([]model.ProcessFlowStep, error) {
	out := make([]model.ProcessFlowStep, 0)
	for _, step := range r.steps {
		if step.FlowID != flowID {
			continue
		}
		for _, pid := range r.prereqs[step.ID] {
			if prereq, ok := r.steps[pid]; ok {
				step.Prerequisites = append(step.Prerequisites, prereq)
			}
		}
		out = append(out, step)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StepOrder < out[j].StepOrder })
	return out, nil
}

func (r *memProcessFlowRepo) DeleteStepsByFlow(_ context.Context, flowID uint) error {
	for id, step := range r.steps {
		if step.FlowID == flowID {
			delete(r.steps, id)
			delete(r.prereqs, id)
		}
	}
	return nil
}

func (r *memProcessFlowRepo) CountStepsWithOrder(_ context.Context, flowID uint, stepOrder int, excludeStepID uint) (int64, error) {
	var count int64
	for _, step := range r.steps {
		if step.FlowID == flowID && step.StepOrder == stepOrder && step.ID != excludeStepID {
			count++
		}
	}
	return count, nil
}

func (r *memProcessFlowRepo) ReplacePrerequisites(_ context.Context, step *model.ProcessFlowStep, prerequisites []model.ProcessFlowStep) error {
	ids := make([]uint, 0, len(prerequisites))
	for _, p := range prerequisites {
		ids = append(ids, p.ID)
	}
	r.prereqs[step.ID] = ids
	return nil
}

// --- projects ---

// memProjectRepo mirrors the cascade the FK constraints declare: deleting a
// project takes its sections and pallets with it when the dependent fakes
// are attached.
type memProjectRepo struct {
	items    map[uint]model.Project
	nextID   uint
	sections *memSectionRepo
	pallets  *memPalletRepo
}

func (r *memProjectRepo) Create(_ context.Context, project *model.Project) error {
	if project.ID == 0 {
		r.nextID++
		project.ID = r.nextID
	}
	r.items[project.ID] = *project
	return nil
}

func (r *memProjectRepo) Update(_ context.Context, project *model.Project) error {
	r.items[project.ID] = *project
	return nil
}

func (r *memProjectRepo) Delete(ctx context.Context, id uint) error {
	delete(r.items, id)
	if r.sections != nil {
		for sid, section := range r.sections.items {
			if section.ProjectID == id {
				_ = r.sections.Delete(ctx, sid)
			}
		}
	}
	if r.pallets != nil {
		for pid, pallet := range r.pallets.items {
			if pallet.ProjectID == id {
				_ = r.pallets.Delete(ctx, pid)
			}
		}
	}
	return nil
}

func (r *memProjectRepo) FindByID(_ context.Context, id uint) (*model.Project, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *memProjectRepo) List(_ context.Context, _ uint, _ string, _, _ int) ([]model.Project, int64, error) {
	out := make([]model.Project, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

// --- sections ---

type memSectionRepo struct {
	items   map[uint]model.Section
	nextID  uint
	pallets *memPalletRepo
}

func newMemSectionRepo() *memSectionRepo {
	return &memSectionRepo{items: make(map[uint]model.Section)}
}

func (r *memSectionRepo) Create(_ context.Context, section *model.Section) error {
	r.nextID++
	section.ID = r.nextID
	r.items[section.ID] = *section
	return nil
}

func (r *memSectionRepo) Update(_ context.Context, section *model.Section) error {
	if _, ok := r.items[section.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[section.ID] = *section
	return nil
}

func (r *memSectionRepo) Delete(ctx context.Context, id uint) error {
	delete(r.items, id)
	if r.pallets != nil {
		for pid, pallet := range r.pallets.items {
			if pallet.SectionID == id {
				_ = r.pallets.Delete(ctx, pid)
			}
		}
	}
	return nil
}

func (r *memSectionRepo) FindByID(_ context.Context, id uint) (*model.Section, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *memSectionRepo) List(_ context.Context, projectID uint, _ string, _, _ int) ([]model.Section, int64, error) {
	out, err := r.ListByProject(context.Background(), projectID)
	if err != nil {
		return nil, 0, err
	}
	return out, int64(len(out)), nil
}

func (r *memSectionRepo) ListByProject(_ context.Context, projectID uint) ([]model.Section, error) {
	out := make([]model.Section, 0)
	for _, item := range r.items {
		if projectID == 0 || item.ProjectID == projectID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- pallets ---

type memPalletRepo struct {
	items  map[uint]model.Pallet
	nextID uint
}

func newMemPalletRepo() *memPalletRepo {
	return &memPalletRepo{items: make(map[uint]model.Pallet)}
}

func (r *memPalletRepo) Create(_ context.Context, pallet *model.Pallet) error {
	r.nextID++
	pallet.ID = r.nextID
	r.items[pallet.ID] = *pallet
	return nil
}

func (r *memPalletRepo) Update(_ context.Context, pallet *model.Pallet) error {
	if _, ok := r.items[pallet.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[pallet.ID] = *pallet
	return nil
}

func (r *memPalletRepo) Delete(_ context.Context, id uint) error {
	delete(r.items, id)
	return nil
}

func (r *memPalletRepo) FindByID(_ context.Context, id uint) (*model.Pallet, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *memPalletRepo) List(_ context.Context, projectID, sectionID uint, _ string, _, _ int) ([]model.Pallet, int64, error) {
	out := make([]model.Pallet, 0)
	for _, item := range r.items {
		if projectID != 0 && item.ProjectID != projectID {
			continue
		}
		if sectionID != 0 && item.SectionID != sectionID {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

// --- persons and roles ---

type memPersonRepo struct {
	items       map[uint]model.Person
	rolesByID   map[uint][]uint // person id -> role ids
	roleCatalog map[uint]model.Role
}

func newMemPersonRepo(roleCatalog map[uint]model.Role) *memPersonRepo {
	return &memPersonRepo{
		items:       make(map[uint]model.Person),
		rolesByID:   make(map[uint][]uint),
		roleCatalog: roleCatalog,
	}
}

func (r *memPersonRepo) Create(_ context.Context, person *model.Person) error {
	if person.ID == 0 {
		person.ID = uint(len(r.items) + 1)
	}
	r.items[person.ID] = *person
	return nil
}

func (r *memPersonRepo) Update(_ context.Context, person *model.Person) error {
	if _, ok := r.items[person.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[person.ID] = *person
	return nil
}

func (r *memPersonRepo) Delete(_ context.Context, id uint) error {
	delete(r.items, id)
	delete(r.rolesByID, id)
	return nil
}

func (r *memPersonRepo) FindByID(_ context.Context, id uint) (*model.Person, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *memPersonRepo) List(_ context.Context, _, _ string, _, _ int) ([]model.Person, int64, error) {
	out := make([]model.Person, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *memPersonRepo) ListRoles(_ context.Context, personID uint) ([]model.Role, error) {
	ids := append([]uint(nil), r.rolesByID[personID]...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]model.Role, 0, len(ids))
	for _, id := range ids {
		if role, ok := r.roleCatalog[id]; ok {
			out = append(out, role)
		}
	}
	return out, nil
}

func (r *memPersonRepo) ReplaceRoles(_ context.Context, personID uint, roleIDs []uint) error {
	seen := make(map[uint]bool, len(roleIDs))
	deduped := make([]uint, 0, len(roleIDs))
	for _, id := range roleIDs {
		if !seen[id] {
			seen[id] = true
			deduped = append(deduped, id)
		}
	}
	r.rolesByID[personID] = deduped
	return nil
}

type memRoleRepo struct {
	items map[uint]model.Role
	perms map[uint][]uint // role id -> permission ids
}

func newMemRoleRepo(items map[uint]model.Role) *memRoleRepo {
	return &memRoleRepo{items: items, perms: make(map[uint][]uint)}
}

func (r *memRoleRepo) Create(_ context.Context, role *model.Role) error {
	if role.ID == 0 {
		role.ID = uint(len(r.items) + 1)
	}
	r.items[role.ID] = *role
	return nil
}

func (r *memRoleRepo) Update(_ context.Context, role *model.Role) error {
	r.items[role.ID] = *role
	return nil
}

func (r *memRoleRepo) Delete(_ context.Context, id uint) error {
	delete(r.items, id)
	return nil
}

func (r *memRoleRepo) FindByID(_ context.Context, id uint) (*model.Role, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *memRoleRepo) FindByIDs(_ context.Context, ids []uint) ([]model.Role, error) {
	seen := make(map[uint]bool, len(ids))
	out := make([]model.Role, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if role, ok := r.items[id]; ok {
			out = append(out, role)
		}
	}
	return out, nil
}

func (r *memRoleRepo) List(_ context.Context, _ string, _, _ int) ([]model.Role, int64, error) {
	out := make([]model.Role, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *memRoleRepo) ListActive(_ context.Context) ([]model.Role, error) {
	out := make([]model.Role, 0, len(r.items))
	for _, item := range r.items {
		if item.IsActive {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRoleRepo) ListPermissions(_ context.Context, roleID uint) ([]model.Permission, error) {
	return nil, nil
}

func (r *memRoleRepo) ReplacePermissions(_ context.Context, roleID uint, permissionIDs []uint) error {
	r.perms[roleID] = append([]uint(nil), permissionIDs...)
	return nil
}
