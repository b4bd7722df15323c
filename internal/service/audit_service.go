package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shipyard/internal/model"
	"shipyard/internal/repository"
)

type AuditLogResponse struct {
	ID        string          `json:"id"`
	Actor     string          `json:"actor"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  string          `json:"entity_id"`
	Details   json.RawMessage `json:"details"`
	CreatedAt string          `json:"created_at"`
}

type AuditLogService interface {
	ListAuditLogs(ctx context.Context, entity, actor string, page, limit int) ([]AuditLogResponse, int64, error)
}

type auditLogService struct {
	repo repository.AuditLogRepository
}

func NewAuditLogService(repo repository.AuditLogRepository) AuditLogService {
	return &auditLogService{repo: repo}
}

func (s *auditLogService) ListAuditLogs(ctx context.Context, entity, actor string, page, limit int) ([]AuditLogResponse, int64, error) {
	logs, total, err := s.repo.List(ctx, entity, actor, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		res = append(res, toAuditLogResponse(l))
	}
	return res, total, nil
}

func toAuditLogResponse(l model.AuditLog) AuditLogResponse {
	details := json.RawMessage(l.Details)
	if !json.Valid(details) {
		details = json.RawMessage("null")
	}
	return AuditLogResponse{
		ID:        l.ID.String(),
		Actor:     l.Actor,
		Action:    l.Action,
		Entity:    l.Entity,
		EntityID:  l.EntityID,
		Details:   details,
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
	}
}
