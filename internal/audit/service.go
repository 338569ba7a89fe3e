package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finchbooks/finch/internal/pagination"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=audit
type Repository interface {
	Insert(ctx context.Context, e *Entry) error
	List(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]*Entry, int, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Record appends an entry to the trail. Errors are logged, never returned;
// the mutation being audited has already happened.
func (s *Service) Record(ctx context.Context, companyID, userID uuid.UUID, action Action, resourceType, resourceID, detail string) {
	e := &Entry{
		CompanyID:    companyID,
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Detail:       detail,
	}

	if err := s.repo.Insert(ctx, e); err != nil {
		s.log.Warn("audit entry dropped",
			"error", err,
			"action", string(action),
			"resource_type", resourceType,
			"resource_id", resourceID)
	}
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]*Entry, int, error) {
	return s.repo.List(ctx, companyID, page)
}
