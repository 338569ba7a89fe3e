package audit_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/finchbooks/finch/internal/audit"
)

func TestService_Record(t *testing.T) {
	companyID := uuid.New()
	userID := uuid.New()

	ctrl := gomock.NewController(t)
	repo := audit.NewMockRepository(ctrl)

	var got *audit.Entry
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *audit.Entry) error {
			got = e
			return nil
		})

	svc := audit.NewService(repo, slog.New(slog.DiscardHandler))

	svc.Record(context.Background(), companyID, userID, audit.ActionPost, "transaction", "t1", "posted invoice")

	assert.Equal(t, companyID, got.CompanyID)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, audit.ActionPost, got.Action)
	assert.Equal(t, "transaction", got.ResourceType)
}

func TestService_Record_InsertFailureSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := audit.NewMockRepository(ctrl)
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	svc := audit.NewService(repo, slog.New(slog.DiscardHandler))

	// Must not panic or surface the error.
	svc.Record(context.Background(), uuid.New(), uuid.New(), audit.ActionDelete, "customer", "c1", "")
}
