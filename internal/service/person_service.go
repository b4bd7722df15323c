package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipyard/internal/model"
	"shipyard/internal/repository"

	"gorm.io/gorm"
)

type PersonRequest struct {
	Name       string `json:"name" binding:"required"`
	EmployeeID string `json:"employee_id" binding:"required"`
	Department string `json:"department" binding:"required"`
	Position   string `json:"position" binding:"required"`
	Gender     string `json:"gender" binding:"required,oneof=M F"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	IsActive   *bool  `json:"is_active"`
}

type AssignRolesRequest struct {
	RoleIDs []uint `json:"role_ids" binding:"required"`
}

type RoleSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type PersonResponse struct {
	ID         uint          `json:"id"`
	Name       string        `json:"name"`
	EmployeeID string        `json:"employee_id"`
	Department string        `json:"department"`
	Position   string        `json:"position"`
	Gender     string        `json:"gender"`
	Phone      string        `json:"phone"`
	Email      string        `json:"email"`
	IsActive   bool          `json:"is_active"`
	Roles      []RoleSummary `json:"roles"`
	CreatedAt  string        `json:"created_at"`
}

type PersonService interface {
	ListPersons(ctx context.Context, department, search string, page, limit int) ([]PersonResponse, int64, error)
	GetPerson(ctx context.Context, id uint) (*PersonResponse, error)
	CreatePerson(ctx context.Context, req PersonRequest, actor string) (*PersonResponse, error)
	UpdatePerson(ctx context.Context, id uint, req PersonRequest, actor string) (*PersonResponse, error)
	DeletePerson(ctx context.Context, id uint, actor string) error
	AssignRoles(ctx context.Context, id uint, req AssignRolesRequest, actor string) (*PersonResponse, error)
}

type personService struct {
	repo      repository.PersonRepository
	roleRepo  repository.RoleRepository
	txManager repository.TransactionManager
	audit     auditRecorder
}

func NewPersonService(repo repository.PersonRepository, roleRepo repository.RoleRepository, txManager repository.TransactionManager, db *gorm.DB) PersonService {
	return &personService{repo: repo, roleRepo: roleRepo, txManager: txManager, audit: newAuditRecorder(db)}
}

func (s *personService) ListPersons(ctx context.Context, department, search string, page, limit int) ([]PersonResponse, int64, error) {
	persons, total, err := s.repo.List(ctx, department, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch persons: %w", err)
	}

	res := make([]PersonResponse, 0, len(persons))
	for _, p := range persons {
		roles, err := s.repo.ListRoles(ctx, p.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to fetch roles for person %d: %w", p.ID, err)
		}
		res = append(res, toPersonResponse(p, roles))
	}
	return res, total, nil
}

func (s *personService) GetPerson(ctx context.Context, id uint) (*PersonResponse, error) {
	person, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("person %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch person: %w", err)
	}

	roles, err := s.repo.ListRoles(ctx, person.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch person roles: %w", err)
	}

	resp := toPersonResponse(*person, roles)
	return &resp, nil
}

func (s *personService) CreatePerson(ctx context.Context, req PersonRequest, actor string) (*PersonResponse, error) {
	person := model.Person{
		Name:       req.Name,
		EmployeeID: req.EmployeeID,
		Department: req.Department,
		Position:   req.Position,
		Gender:     req.Gender,
		Phone:      req.Phone,
		Email:      req.Email,
		IsActive:   true,
	}
	if req.IsActive != nil {
		person.IsActive = *req.IsActive
	}

	if err := s.repo.Create(ctx, &person); err != nil {
		return nil, fmt.Errorf("failed to create person: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionCreate, "person", fmt.Sprint(person.ID), req)

	return s.GetPerson(ctx, person.ID)
}

func (s *personService) UpdatePerson(ctx context.Context, id uint, req PersonRequest, actor string) (*PersonResponse, error) {
	person, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("person %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch person: %w", err)
	}

	person.Name = req.Name
	person.EmployeeID = req.EmployeeID
	person.Department = req.Department
	person.Position = req.Position
	person.Gender = req.Gender
	person.Phone = req.Phone
	person.Email = req.Email
	if req.IsActive != nil {
		person.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to update person: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionUpdate, "person", fmt.Sprint(id), req)

	return s.GetPerson(ctx, id)
}

func (s *personService) DeletePerson(ctx context.Context, id uint, actor string) error {
	person, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("person %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to fetch person: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionDelete, "person", fmt.Sprint(id), map[string]string{"employee_id": person.EmployeeID})
	return nil
}

// AssignRoles replaces the person's entire role set with the submitted one.
// An empty list clears all roles. Every id must name an existing role; the
// swap runs in one transaction so readers never see a partial set.
func (s *personService) AssignRoles(ctx context.Context, id uint, req AssignRolesRequest, actor string) (*PersonResponse, error) {
	person, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("person %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch person: %w", err)
	}

	if len(req.RoleIDs) > 0 {
		roles, err := s.roleRepo.FindByIDs(ctx, req.RoleIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve roles: %w", err)
		}
		if len(roles) != len(uniqueIDs(req.RoleIDs)) {
			return nil, fmt.Errorf("%w: one or more role ids do not exist", ErrValidation)
		}
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		return s.repo.ReplaceRoles(txCtx, person.ID, req.RoleIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assign roles: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionAssignRoles, "person", fmt.Sprint(id), req)

	return s.GetPerson(ctx, id)
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func toPersonResponse(p model.Person, roles []model.Role) PersonResponse {
	summaries := make([]RoleSummary, 0, len(roles))
	for _, r := range roles {
		summaries = append(summaries, RoleSummary{ID: r.ID, Name: r.Name})
	}
	return PersonResponse{
		ID:         p.ID,
		Name:       p.Name,
		EmployeeID: p.EmployeeID,
		Department: p.Department,
		Position:   p.Position,
		Gender:     p.Gender,
		Phone:      p.Phone,
		Email:      p.Email,
		IsActive:   p.IsActive,
		Roles:      summaries,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}
}
