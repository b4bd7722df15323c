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

type SectionRequest struct {
	SectionNumber      string `json:"section_number" binding:"required"`
	ProjectID          uint   `json:"project_id" binding:"required"`
	TypicalSectionID   uint   `json:"typical_section_id" binding:"required"`
	PlannedStartDate   string `json:"planned_start_date"` // all dates YYYY-MM-DD, optional
	OnBlockDate        string `json:"on_block_date"`
	OffBlockDate       string `json:"off_block_date"`
	EndDate            string `json:"end_date"`
	ModelReceived      bool   `json:"model_received"`
	BOMReceived        bool   `json:"bom_received"`
	StartConditionsMet bool   `json:"start_conditions_met"`
}

type SectionResponse struct {
	ID                 uint    `json:"id"`
	SectionNumber      string  `json:"section_number"`
	ProjectID          uint    `json:"project_id"`
	ProjectName        string  `json:"project_name,omitempty"`
	TypicalSectionID   uint    `json:"typical_section_id"`
	TypicalSectionName string  `json:"typical_section_name,omitempty"`
	PlannedStartDate   *string `json:"planned_start_date"`
	OnBlockDate        *string `json:"on_block_date"`
	OffBlockDate       *string `json:"off_block_date"`
	EndDate            *string `json:"end_date"`
	OnBlockCycleDays   int     `json:"on_block_cycle_days"`
	ModelReceived      bool    `json:"model_received"`
	BOMReceived        bool    `json:"bom_received"`
	StartConditionsMet bool    `json:"start_conditions_met"`
	CreatedAt          string  `json:"created_at"`
}

type SectionService interface {
	ListSections(ctx context.Context, projectID uint, search string, page, limit int) ([]SectionResponse, int64, error)
	GetSection(ctx context.Context, id uint) (*SectionResponse, error)
	CreateSection(ctx context.Context, req SectionRequest, actor string) (*SectionResponse, error)
	UpdateSection(ctx context.Context, id uint, req SectionRequest, actor string) (*SectionResponse, error)
	DeleteSection(ctx context.Context, id uint, actor string) error
}

type sectionService struct {
	repo               repository.SectionRepository
	projectRepo        repository.ProjectRepository
	typicalSectionRepo repository.TypicalSectionRepository
	audit              auditRecorder
}

func NewSectionService(
	repo repository.SectionRepository,
	projectRepo repository.ProjectRepository,
	typicalSectionRepo repository.TypicalSectionRepository,
	db *gorm.DB,
) SectionService {
	return &sectionService{
		repo:               repo,
		projectRepo:        projectRepo,
		typicalSectionRepo: typicalSectionRepo,
		audit:              newAuditRecorder(db),
	}
}

func (s *sectionService) ListSections(ctx context.Context, projectID uint, search string, page, limit int) ([]SectionResponse, int64, error) {
	sections, total, err := s.repo.List(ctx, projectID, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch sections: %w", err)
	}

	res := make([]SectionResponse, 0, len(sections))
	for _, sec := range sections {
		res = append(res, toSectionResponse(sec))
	}
	return res, total, nil
}

func (s *sectionService) GetSection(ctx context.Context, id uint) (*SectionResponse, error) {
	section, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("section %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch section: %w", err)
	}
	resp := toSectionResponse(*section)
	return &resp, nil
}

func (s *sectionService) CreateSection(ctx context.Context, req SectionRequest, actor string) (*SectionResponse, error) {
	section, err := s.buildSection(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, section); err != nil {
		return nil, fmt.Errorf("failed to create section: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionCreate, "section", fmt.Sprint(section.ID), req)

	return s.GetSection(ctx, section.ID)
}

func (s *sectionService) UpdateSection(ctx context.Context, id uint, req SectionRequest, actor string) (*SectionResponse, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("section %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch section: %w", err)
	}

	updated, err := s.buildSection(ctx, req)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update section: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionUpdate, "section", fmt.Sprint(id), req)

	return s.GetSection(ctx, id)
}

func (s *sectionService) DeleteSection(ctx context.Context, id uint, actor string) error {
	section, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("section %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to fetch section: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete section: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionDelete, "section", fmt.Sprint(id), map[string]string{"section_number": section.SectionNumber})
	return nil
}

// buildSection validates references and parses the four tracking dates. An
// unparsable date is stored as absent; the dates are not ordered against
// each other, matching how the yard records corrections.
func (s *sectionService) buildSection(ctx context.Context, req SectionRequest) (*model.Section, error) {
	if _, err := s.projectRepo.FindByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project %d does not exist", ErrValidation, req.ProjectID)
		}
		return nil, fmt.Errorf("failed to resolve project: %w", err)
	}
	if _, err := s.typicalSectionRepo.FindByID(ctx, req.TypicalSectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: typical section %d does not exist", ErrValidation, req.TypicalSectionID)
		}
		return nil, fmt.Errorf("failed to resolve typical section: %w", err)
	}

	return &model.Section{
		SectionNumber:      req.SectionNumber,
		ProjectID:          req.ProjectID,
		TypicalSectionID:   req.TypicalSectionID,
		PlannedStartDate:   parseOptionalDate(req.PlannedStartDate),
		OnBlockDate:        parseOptionalDate(req.OnBlockDate),
		OffBlockDate:       parseOptionalDate(req.OffBlockDate),
		EndDate:            parseOptionalDate(req.EndDate),
		ModelReceived:      req.ModelReceived,
		BOMReceived:        req.BOMReceived,
		StartConditionsMet: req.StartConditionsMet,
	}, nil
}

func toSectionResponse(sec model.Section) SectionResponse {
	resp := SectionResponse{
		ID:                 sec.ID,
		SectionNumber:      sec.SectionNumber,
		ProjectID:          sec.ProjectID,
		TypicalSectionID:   sec.TypicalSectionID,
		PlannedStartDate:   formatOptionalDate(sec.PlannedStartDate),
		OnBlockDate:        formatOptionalDate(sec.OnBlockDate),
		OffBlockDate:       formatOptionalDate(sec.OffBlockDate),
		EndDate:            formatOptionalDate(sec.EndDate),
		OnBlockCycleDays:   sec.OnBlockCycleDays(),
		ModelReceived:      sec.ModelReceived,
		BOMReceived:        sec.BOMReceived,
		StartConditionsMet: sec.StartConditionsMet,
		CreatedAt:          sec.CreatedAt.Format(time.RFC3339),
	}
	if sec.Project.ID != 0 {
		resp.ProjectName = sec.Project.ProjectName
	}
	if sec.TypicalSection.ID != 0 {
		resp.TypicalSectionName = sec.TypicalSection.SectionName
	}
	return resp
}
