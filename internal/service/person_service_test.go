package service

import (
	"context"
	"errors"
	"testing"

	"shipyard/internal/model"
)

func newPersonFixture(t *testing.T) (PersonService, *memPersonRepo) {
	t.Helper()
	roleCatalog := map[uint]model.Role{
		1: {ID: 1, Name: "Designer", IsActive: true},
		2: {ID: 2, Name: "Production Manager", IsActive: true},
		3: {ID: 3, Name: "Production Worker", IsActive: true},
	}
	persons := newMemPersonRepo(roleCatalog)
	persons.items[1] = model.Person{
		ID: 1, Name: "Li Wei", EmployeeID: "E0001",
		Department: "Hull Design", Position: "Engineer",
		Gender: model.GenderMale, IsActive: true,
	}
	persons.rolesByID[1] = []uint{1}

	roles := newMemRoleRepo(roleCatalog)
	return NewPersonService(persons, roles, passTxManager{}, nil), persons
}

func roleIDs(roles []RoleSummary) []uint {
	ids := make([]uint, 0, len(roles))
	for _, r := range roles {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestAssignRolesReplacesWholeSet(t *testing.T) {
	svc, _ := newPersonFixture(t)

	resp, err := svc.AssignRoles(context.Background(), 1, AssignRolesRequest{RoleIDs: []uint{2, 3}}, "admin")
	if err != nil {
		t.Fatalf("AssignRoles: %v", err)
	}

	got := roleIDs(resp.Roles)
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("roles after assignment = %v, want [2 3]; the previous set must not survive", got)
	}
}

func TestAssignRolesEmptyListClears(t *testing.T) {
	svc, persons := newPersonFixture(t)

	resp, err := svc.AssignRoles(context.Background(), 1, AssignRolesRequest{RoleIDs: []uint{}}, "admin")
	if err != nil {
		t.Fatalf("AssignRoles: %v", err)
	}

	if len(resp.Roles) != 0 {
		t.Errorf("roles = %v, want none", roleIDs(resp.Roles))
	}
	if len(persons.rolesByID[1]) != 0 {
		t.Errorf("stored role links = %v, want none", persons.rolesByID[1])
	}
}

func TestAssignRolesRejectsUnknownRole(t *testing.T) {
	svc, persons := newPersonFixture(t)

	_, err := svc.AssignRoles(context.Background(), 1, AssignRolesRequest{RoleIDs: []uint{2, 99}}, "admin")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if got := persons.rolesByID[1]; len(got) != 1 || got[0] != 1 {
		t.Errorf("role links changed to %v on a rejected request", got)
	}
}

func TestAssignRolesToleratesDuplicateIDs(t *testing.T) {
	svc, _ := newPersonFixture(t)

	resp, err := svc.AssignRoles(context.Background(), 1, AssignRolesRequest{RoleIDs: []uint{2, 2}}, "admin")
	if err != nil {
		t.Fatalf("AssignRoles: %v", err)
	}
	if got := roleIDs(resp.Roles); len(got) != 1 || got[0] != 2 {
		t.Errorf("roles = %v, want [2]", got)
	}
}

func TestAssignRolesUnknownPerson(t *testing.T) {
	svc, _ := newPersonFixture(t)

	_, err := svc.AssignRoles(context.Background(), 404, AssignRolesRequest{RoleIDs: []uint{1}}, "admin")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreatePersonDefaultsActive(t *testing.T) {
	svc, _ := newPersonFixture(t)

	resp, err := svc.CreatePerson(context.Background(), PersonRequest{
		Name:       "Zhang Min",
		EmployeeID: "E0002",
		Department: "Production",
		Position:   "Welder",
		Gender:     model.GenderFemale,
	}, "admin")
	if err != nil {
		t.Fatalf("CreatePerson: %v", err)
	}
	if !resp.IsActive {
		t.Error("new person not active by default")
	}
	if len(resp.Roles) != 0 {
		t.Errorf("new person roles = %v, want none", roleIDs(resp.Roles))
	}
}

func TestDeletePersonRemovesRoleLinks(t *testing.T) {
	svc, persons := newPersonFixture(t)

	if err := svc.DeletePerson(context.Background(), 1, "admin"); err != nil {
		t.Fatalf("DeletePerson: %v", err)
	}
	if _, ok := persons.items[1]; ok {
		t.Error("person row still present after delete")
	}
	if len(persons.rolesByID[1]) != 0 {
		t.Errorf("role links = %v, want none after delete", persons.rolesByID[1])
	}
}
