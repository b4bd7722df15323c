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

type PalletRequest struct {
	PalletCode   string `json:"pallet_code" binding:"required"`
	ProjectID    uint   `json:"project_id" binding:"required"`
	SectionID    uint   `json:"section_id" binding:"required"`
	RequiredDate string `json:"required_date"` // YYYY-MM-DD, optional
	IsReceived   bool   `json:"is_received"`
	Description  string `json:"description"`
}

type PalletResponse struct {
	ID            uint    `json:"id"`
	PalletCode    string  `json:"pallet_code"`
	ProjectID     uint    `json:"project_id"`
	ProjectName   string  `json:"project_name,omitempty"`
	SectionID     uint    `json:"section_id"`
	SectionNumber string  `json:"section_number,omitempty"`
	RequiredDate  *string `json:"required_date"`
	IsReceived    bool    `json:"is_received"`
	Description   string  `json:"description"`
	CreatedAt     string  `json:"created_at"`
}

type PalletService interface {
	ListPallets(ctx context.Context, projectID, sectionID uint, search string, page, limit int) ([]PalletResponse, int64, error)
	GetPallet(ctx context.Context, id uint) (*PalletResponse, error)
	CreatePallet(ctx context.Context, req PalletRequest, actor string) (*PalletResponse, error)
	UpdatePallet(ctx context.Context, id uint, req PalletRequest, actor string) (*PalletResponse, error)
	DeletePallet(ctx context.Context, id uint, actor string) error
}

type palletService struct {
	repo        repository.PalletRepository
	projectRepo repository.ProjectRepository
	sectionRepo repository.SectionRepository
	broadcaster EventBroadcaster
	audit       auditRecorder
}

func NewPalletService(
	repo repository.PalletRepository,
	projectRepo repository.ProjectRepository,
	sectionRepo repository.SectionRepository,
	broadcaster EventBroadcaster,
	db *gorm.DB,
) PalletService {
	return &palletService{
		repo:        repo,
		projectRepo: projectRepo,
		sectionRepo: sectionRepo,
		broadcaster: broadcaster,
		audit:       newAuditRecorder(db),
	}
}

func (s *palletService) ListPallets(ctx context.Context, projectID, sectionID uint, search string, page, limit int) ([]PalletResponse, int64, error) {
	pallets, total, err := s.repo.List(ctx, projectID, sectionID, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch pallets: %w", err)
	}

	res := make([]PalletResponse, 0, len(pallets))
	for _, p := range pallets {
		res = append(res, toPalletResponse(p))
	}
	return res, total, nil
}

func (s *palletService) GetPallet(ctx context.Context, id uint) (*PalletResponse, error) {
	pallet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pallet %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch pallet: %w", err)
	}
	resp := toPalletResponse(*pallet)
	return &resp, nil
}

func (s *palletService) CreatePallet(ctx context.Context, req PalletRequest, actor string) (*PalletResponse, error) {
	if err := s.validatePalletRefs(ctx, req); err != nil {
		return nil, err
	}

	pallet := model.Pallet{
		PalletCode:   req.PalletCode,
		ProjectID:    req.ProjectID,
		SectionID:    req.SectionID,
		RequiredDate: parseOptionalDate(req.RequiredDate),
		IsReceived:   req.IsReceived,
		Description:  req.Description,
	}

	if err := s.repo.Create(ctx, &pallet); err != nil {
		return nil, fmt.Errorf("failed to create pallet: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionCreate, "pallet", fmt.Sprint(pallet.ID), req)
	if pallet.IsReceived {
		s.notifyReceived(pallet)
	}

	return s.GetPallet(ctx, pallet.ID)
}

func (s *palletService) UpdatePallet(ctx context.Context, id uint, req PalletRequest, actor string) (*PalletResponse, error) {
	pallet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pallet %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch pallet: %w", err)
	}

	if err := s.validatePalletRefs(ctx, req); err != nil {
		return nil, err
	}

	wasReceived := pallet.IsReceived

	pallet.PalletCode = req.PalletCode
	pallet.ProjectID = req.ProjectID
	pallet.SectionID = req.SectionID
	pallet.RequiredDate = parseOptionalDate(req.RequiredDate)
	pallet.IsReceived = req.IsReceived
	pallet.Description = req.Description

	if err := s.repo.Update(ctx, pallet); err != nil {
		return nil, fmt.Errorf("failed to update pallet: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionUpdate, "pallet", fmt.Sprint(id), req)
	if !wasReceived && pallet.IsReceived {
		s.notifyReceived(*pallet)
	}

	return s.GetPallet(ctx, id)
}

func (s *palletService) DeletePallet(ctx context.Context, id uint, actor string) error {
	pallet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("pallet %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to fetch pallet: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete pallet: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionDelete, "pallet", fmt.Sprint(id), map[string]string{"pallet_code": pallet.PalletCode})
	return nil
}

func (s *palletService) validatePalletRefs(ctx context.Context, req PalletRequest) error {
	if _, err := s.projectRepo.FindByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: project %d does not exist", ErrValidation, req.ProjectID)
		}
		return fmt.Errorf("failed to resolve project: %w", err)
	}
	section, err := s.sectionRepo.FindByID(ctx, req.SectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: section %d does not exist", ErrValidation, req.SectionID)
		}
		return fmt.Errorf("failed to resolve section: %w", err)
	}
	if section.ProjectID != req.ProjectID {
		return fmt.Errorf("%w: section %d does not belong to project %d", ErrValidation, req.SectionID, req.ProjectID)
	}
	return nil
}

// notifyReceived fires when a pallet transitions to received, so assembly
// planners watching the section see arrivals without polling.
func (s *palletService) notifyReceived(pallet model.Pallet) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.BroadcastEvent("pallet.received", map[string]interface{}{
		"pallet_id":   pallet.ID,
		"pallet_code": pallet.PalletCode,
		"project_id":  pallet.ProjectID,
		"section_id":  pallet.SectionID,
	})
}

func toPalletResponse(p model.Pallet) PalletResponse {
	resp := PalletResponse{
		ID:           p.ID,
		PalletCode:   p.PalletCode,
		ProjectID:    p.ProjectID,
		SectionID:    p.SectionID,
		RequiredDate: formatOptionalDate(p.RequiredDate),
		IsReceived:   p.IsReceived,
		Description:  p.Description,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
	if p.Project.ID != 0 {
		resp.ProjectName = p.Project.ProjectName
	}
	if p.Section.ID != 0 {
		resp.SectionNumber = p.Section.SectionNumber
	}
	return resp
}
