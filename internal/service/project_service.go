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

type ProjectRequest struct {
	ProjectName  string `json:"project_name" binding:"required"`
	ShipTypeID   uint   `json:"ship_type_id" binding:"required"`
	DeliveryDate string `json:"delivery_date"` // YYYY-MM-DD, optional
	Description  string `json:"description"`
}

type ProjectResponse struct {
	ID           uint    `json:"id"`
	ProjectName  string  `json:"project_name"`
	ShipTypeID   uint    `json:"ship_type_id"`
	ShipTypeName string  `json:"ship_type_name,omitempty"`
	DeliveryDate *string `json:"delivery_date"`
	DeliveryYear int     `json:"delivery_year"`
	Description  string  `json:"description"`
	CreatedAt    string  `json:"created_at"`
}

type ProjectService interface {
	ListProjects(ctx context.Context, shipTypeID uint, search string, page, limit int) ([]ProjectResponse, int64, error)
	GetProject(ctx context.Context, id uint) (*ProjectResponse, error)
	CreateProject(ctx context.Context, req ProjectRequest, actor string) (*ProjectResponse, error)
	UpdateProject(ctx context.Context, id uint, req ProjectRequest, actor string) (*ProjectResponse, error)
	DeleteProject(ctx context.Context, id uint, actor string) error
}

type projectService struct {
	repo         repository.ProjectRepository
	shipTypeRepo repository.ShipTypeRepository
	audit        auditRecorder
}

func NewProjectService(repo repository.ProjectRepository, shipTypeRepo repository.ShipTypeRepository, db *gorm.DB) ProjectService {
	return &projectService{repo: repo, shipTypeRepo: shipTypeRepo, audit: newAuditRecorder(db)}
}

func (s *projectService) ListProjects(ctx context.Context, shipTypeID uint, search string, page, limit int) ([]ProjectResponse, int64, error) {
	projects, total, err := s.repo.List(ctx, shipTypeID, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch projects: %w", err)
	}

	res := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		res = append(res, toProjectResponse(p))
	}
	return res, total, nil
}

func (s *projectService) GetProject(ctx context.Context, id uint) (*ProjectResponse, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}
	resp := toProjectResponse(*project)
	return &resp, nil
}

func (s *projectService) CreateProject(ctx context.Context, req ProjectRequest, actor string) (*ProjectResponse, error) {
	if _, err := s.shipTypeRepo.FindByID(ctx, req.ShipTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ship type %d does not exist", ErrValidation, req.ShipTypeID)
		}
		return nil, fmt.Errorf("failed to resolve ship type: %w", err)
	}

	project := model.Project{
		ProjectName:  req.ProjectName,
		ShipTypeID:   req.ShipTypeID,
		DeliveryDate: parseOptionalDate(req.DeliveryDate),
		Description:  req.Description,
	}

	if err := s.repo.Create(ctx, &project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionCreate, "project", fmt.Sprint(project.ID), req)

	return s.GetProject(ctx, project.ID)
}

func (s *projectService) UpdateProject(ctx context.Context, id uint, req ProjectRequest, actor string) (*ProjectResponse, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	if _, err := s.shipTypeRepo.FindByID(ctx, req.ShipTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ship type %d does not exist", ErrValidation, req.ShipTypeID)
		}
		return nil, fmt.Errorf("failed to resolve ship type: %w", err)
	}

	project.ProjectName = req.ProjectName
	project.ShipTypeID = req.ShipTypeID
	project.DeliveryDate = parseOptionalDate(req.DeliveryDate)
	project.Description = req.Description

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionUpdate, "project", fmt.Sprint(id), req)

	return s.GetProject(ctx, id)
}

func (s *projectService) DeleteProject(ctx context.Context, id uint, actor string) error {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("project %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to fetch project: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionDelete, "project", fmt.Sprint(id), map[string]string{"project_name": project.ProjectName})
	return nil
}

func toProjectResponse(p model.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:           p.ID,
		ProjectName:  p.ProjectName,
		ShipTypeID:   p.ShipTypeID,
		DeliveryDate: formatOptionalDate(p.DeliveryDate),
		DeliveryYear: p.DeliveryYear(),
		Description:  p.Description,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
	if p.ShipType.ID != 0 {
		resp.ShipTypeName = p.ShipType.ShipType
	}
	return resp
}
