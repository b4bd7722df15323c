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

type ShipTypeRequest struct {
	ShipType    string `json:"ship_type" binding:"required"`
	ShipSubtype string `json:"ship_subtype"`
}

type ShipTypeResponse struct {
	ID          uint   `json:"id"`
	ShipType    string `json:"ship_type"`
	ShipSubtype string `json:"ship_subtype"`
	CreatedAt   string `json:"created_at"`
}

type ShipTypeService interface {
	ListShipTypes(ctx context.Context, search string, page, limit int) ([]ShipTypeResponse, int64, error)
	GetShipType(ctx context.Context, id uint) (*ShipTypeResponse, error)
	CreateShipType(ctx context.Context, req ShipTypeRequest, actor string) (*ShipTypeResponse, error)
	UpdateShipType(ctx context.Context, id uint, req ShipTypeRequest, actor string) (*ShipTypeResponse, error)
	DeleteShipType(ctx context.Context, id uint, actor string) error
}

type shipTypeService struct {
	repo  repository.ShipTypeRepository
	audit auditRecorder
}

func NewShipTypeService(repo repository.ShipTypeRepository, db *gorm.DB) ShipTypeService {
	return &shipTypeService{repo: repo, audit: newAuditRecorder(db)}
}

func (s *shipTypeService) ListShipTypes(ctx context.Context, search string, page, limit int) ([]ShipTypeResponse, int64, error) {
	shipTypes, total, err := s.repo.List(ctx, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch ship types: %w", err)
	}

	res := make([]ShipTypeResponse, 0, len(shipTypes))
	for _, st := range shipTypes {
		res = append(res, toShipTypeResponse(st))
	}
	return res, total, nil
}

func (s *shipTypeService) GetShipType(ctx context.Context, id uint) (*ShipTypeResponse, error) {
	shipType, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ship type %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch ship type: %w", err)
	}
	resp := toShipTypeResponse(*shipType)
	return &resp, nil
}

func (s *shipTypeService) CreateShipType(ctx context.Context, req ShipTypeRequest, actor string) (*ShipTypeResponse, error) {
	shipType := model.ShipType{
		ShipType:    req.ShipType,
		ShipSubtype: req.ShipSubtype,
	}

	if err := s.repo.Create(ctx, &shipType); err != nil {
		return nil, fmt.Errorf("failed to create ship type: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionCreate, "ship_type", fmt.Sprint(shipType.ID), req)

	resp := toShipTypeResponse(shipType)
	return &resp, nil
}

func (s *shipTypeService) UpdateShipType(ctx context.Context, id uint, req ShipTypeRequest, actor string) (*ShipTypeResponse, error) {
	shipType, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ship type %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch ship type: %w", err)
	}

	shipType.ShipType = req.ShipType
	shipType.ShipSubtype = req.ShipSubtype

	if err := s.repo.Update(ctx, shipType); err != nil {
		return nil, fmt.Errorf("failed to update ship type: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionUpdate, "ship_type", fmt.Sprint(id), req)

	resp := toShipTypeResponse(*shipType)
	return &resp, nil
}

func (s *shipTypeService) DeleteShipType(ctx context.Context, id uint, actor string) error {
	shipType, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("ship type %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to fetch ship type: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete ship type: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionDelete, "ship_type", fmt.Sprint(id), map[string]string{
		"ship_type":    shipType.ShipType,
		"ship_subtype": shipType.ShipSubtype,
	})
	return nil
}

func toShipTypeResponse(st model.ShipType) ShipTypeResponse {
	return ShipTypeResponse{
		ID:          st.ID,
		ShipType:    st.ShipType,
		ShipSubtype: st.ShipSubtype,
		CreatedAt:   st.CreatedAt.Format(time.RFC3339),
	}
}
