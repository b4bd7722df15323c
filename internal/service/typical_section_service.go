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

type TypicalSectionRequest struct {
	ShipTypeID  uint   `json:"ship_type_id" binding:"required"`
	SectionName string `json:"section_name" binding:"required"`
	SectionCode string `json:"section_code"`
	Description string `json:"description"`
}

type TypicalSectionResponse struct {
	ID           uint   `json:"id"`
	ShipTypeID   uint   `json:"ship_type_id"`
	ShipTypeName string `json:"ship_type_name,omitempty"`
	SectionName  string `json:"section_name"`
	SectionCode  string `json:"section_code"`
	Description  string `json:"description"`
	IsActive     bool   `json:"is_active"`
	CreatedAt    string `json:"created_at"`
}

type TypicalSectionService interface {
	ListTypicalSections(ctx context.Context, shipTypeID uint, search string, page, limit int) ([]TypicalSectionResponse, int64, error)
	GetTypicalSection(ctx context.Context, id uint) (*TypicalSectionResponse, error)
	CreateTypicalSection(ctx context.Context, req TypicalSectionRequest, actor string) (*TypicalSectionResponse, error)
	UpdateTypicalSection(ctx context.Context, id uint, req TypicalSectionRequest, actor string) (*TypicalSectionResponse, error)
	DeleteTypicalSection(ctx context.Context, id uint, actor string) error
}

type typicalSectionService struct {
	repo         repository.TypicalSectionRepository
	shipTypeRepo repository.ShipTypeRepository
	audit        auditRecorder
}

func NewTypicalSectionService(repo repository.TypicalSectionRepository, shipTypeRepo repository.ShipTypeRepository, db *gorm.DB) TypicalSectionService {
	return &typicalSectionService{repo: repo, shipTypeRepo: shipTypeRepo, audit: newAuditRecorder(db)}
}

func (s *typicalSectionService) ListTypicalSections(ctx context.Context, shipTypeID uint, search string, page, limit int) ([]TypicalSectionResponse, int64, error) {
	sections, total, err := s.repo.List(ctx, shipTypeID, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch typical sections: %w", err)
	}

	res := make([]TypicalSectionResponse, 0, len(sections))
	for _, sec := range sections {
		res = append(res, toTypicalSectionResponse(sec))
	}
	return res, total, nil
}

func (s *typicalSectionService) GetTypicalSection(ctx context.Context, id uint) (*TypicalSectionResponse, error) {
	section, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("typical section %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch typical section: %w", err)
	}
	resp := toTypicalSectionResponse(*section)
	return &resp, nil
}

func (s *typicalSectionService) CreateTypicalSection(ctx context.Context, req TypicalSectionRequest, actor string) (*TypicalSectionResponse, error) {
	if _, err := s.shipTypeRepo.FindByID(ctx, req.ShipTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ship type %d does not exist", ErrValidation, req.ShipTypeID)
		}
		return nil, fmt.Errorf("failed to resolve ship type: %w", err)
	}

	section := model.TypicalSection{
		ShipTypeID:  req.ShipTypeID,
		SectionName: req.SectionName,
		SectionCode: req.SectionCode,
		Description: req.Description,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, &section); err != nil {
		return nil, fmt.Errorf("failed to create typical section: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionCreate, "typical_section", fmt.Sprint(section.ID), req)

	return s.GetTypicalSection(ctx, section.ID)
}

func (s *typicalSectionService) UpdateTypicalSection(ctx context.Context, id uint, req TypicalSectionRequest, actor string) (*TypicalSectionResponse, error) {
	section, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("typical section %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch typical section: %w", err)
	}

	if _, err := s.shipTypeRepo.FindByID(ctx, req.ShipTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ship type %d does not exist", ErrValidation, req.ShipTypeID)
		}
		return nil, fmt.Errorf("failed to resolve ship type: %w", err)
	}

	section.ShipTypeID = req.ShipTypeID
	section.SectionName = req.SectionName
	section.SectionCode = req.SectionCode
	section.Description = req.Description

	if err := s.repo.Update(ctx, section); err != nil {
		return nil, fmt.Errorf("failed to update typical section: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionUpdate, "typical_section", fmt.Sprint(id), req)

	return s.GetTypicalSection(ctx, id)
}

func (s *typicalSectionService) DeleteTypicalSection(ctx context.Context, id uint, actor string) error {
	section, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("typical section %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to fetch typical section: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete typical section: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionDelete, "typical_section", fmt.Sprint(id), map[string]string{"section_name": section.SectionName})
	return nil
}

func toTypicalSectionResponse(sec model.TypicalSection) TypicalSectionResponse {
	resp := TypicalSectionResponse{
		ID:          sec.ID,
		ShipTypeID:  sec.ShipTypeID,
		SectionName: sec.SectionName,
		SectionCode: sec.SectionCode,
		Description: sec.Description,
		IsActive:    sec.IsActive,
		CreatedAt:   sec.CreatedAt.Format(time.RFC3339),
	}
	if sec.ShipType.ID != 0 {
		resp.ShipTypeName = sec.ShipType.ShipType
	}
	return resp
}
