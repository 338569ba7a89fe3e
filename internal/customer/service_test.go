package customer_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/finchbooks/finch/internal/customer"
	"github.com/finchbooks/finch/internal/errs"
)

func TestService_Create(t *testing.T) {
	companyID := uuid.New()

	ctrl := gomock.NewController(t)
	repo := customer.NewMockRepository(ctrl)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	svc := customer.NewService(repo)

	c, err := svc.Create(context.Background(), companyID, customer.CreateParams{
		CustomerName: "Acme Corp",
		FirstName:    "John",
		LastName:     "Doe",
		Email:        "billing@acme.example",
	})
	require.NoError(t, err)
	assert.Equal(t, companyID, c.CompanyID)
	assert.Equal(t, customer.TypeBusiness, c.CustomerType, "type defaults to business")
}

func TestService_Create_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		params    customer.CreateParams
		wantField string
	}{
		{
			name:      "missing name",
			params:    customer.CreateParams{CustomerType: customer.TypeBusiness},
			wantField: "customer_name",
		},
		{
			name:      "unknown type",
			params:    customer.CreateParams{CustomerName: "Acme", CustomerType: "charity"},
			wantField: "customer_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := customer.NewMockRepository(ctrl)

			svc := customer.NewService(repo)

			_, err := svc.Create(context.Background(), uuid.New(), tt.params)
			require.Error(t, err)

			var verr *errs.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestService_Update_PartialFields(t *testing.T) {
	companyID := uuid.New()
	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := customer.NewMockRepository(ctrl)

	existing := &customer.Customer{
		ID:           id,
		CompanyID:    companyID,
		CustomerName: "Acme Corp",
		CustomerType: customer.TypeBusiness,
		Email:        "old@acme.example",
		Phone:        "555-123-4567",
	}

	repo.EXPECT().Get(gomock.Any(), companyID, id).Return(existing, nil)
	repo.EXPECT().Update(gomock.Any(), existing).Return(nil)

	svc := customer.NewService(repo)

	c, err := svc.Update(context.Background(), companyID, id, customer.UpdateParams{
		Email: new("new@acme.example"),
	})
	require.NoError(t, err)
	assert.Equal(t, "new@acme.example", c.Email)
	assert.Equal(t, "555-123-4567", c.Phone, "untouched fields survive")
}
