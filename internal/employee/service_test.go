package employee_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/finchbooks/finch/internal/employee"
	"github.com/finchbooks/finch/internal/errs"
)

func TestService_Create(t *testing.T) {
	companyID := uuid.New()
	hireDate := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	repo := employee.NewMockRepository(ctrl)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	svc := employee.NewService(repo)

	e, err := svc.Create(context.Background(), companyID, employee.CreateParams{
		FirstName:  "Test",
		LastName:   "Employee",
		HireDate:   hireDate,
		PayType:    employee.PayHourly,
		HourlyRate: new(decimal.RequireFromString("25.50")),
	})
	require.NoError(t, err)
	assert.Equal(t, employee.PayHourly, e.PayType)
	assert.True(t, e.HourlyRate.Equal(decimal.RequireFromString("25.50")))
}

func TestService_Create_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		params    employee.CreateParams
		wantField string
	}{
		{
			name:      "missing first name",
			params:    employee.CreateParams{LastName: "Employee"},
			wantField: "first_name",
		},
		{
			name:      "missing last name",
			params:    employee.CreateParams{FirstName: "Test"},
			wantField: "last_name",
		},
		{
			name: "unknown pay type",
			params: employee.CreateParams{
				FirstName: "Test", LastName: "Employee", PayType: "commission",
			},
			wantField: "pay_type",
		},
		{
			name: "negative hourly rate",
			params: employee.CreateParams{
				FirstName: "Test", LastName: "Employee",
				HourlyRate: new(decimal.RequireFromString("-1")),
			},
			wantField: "hourly_rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := employee.NewMockRepository(ctrl)

			svc := employee.NewService(repo)

			_, err := svc.Create(context.Background(), uuid.New(), tt.params)
			require.Error(t, err)

			var verr *errs.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestService_Update_SwitchToSalary(t *testing.T) {
	companyID := uuid.New()
	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := employee.NewMockRepository(ctrl)

	existing := &employee.Employee{
		ID:         id,
		CompanyID:  companyID,
		FirstName:  "Test",
		LastName:   "Employee",
		PayType:    employee.PayHourly,
		HourlyRate: decimal.RequireFromString("25.50"),
	}

	repo.EXPECT().Get(gomock.Any(), companyID, id).Return(existing, nil)
	repo.EXPECT().Update(gomock.Any(), existing).Return(nil)

	svc := employee.NewService(repo)

	e, err := svc.Update(context.Background(), companyID, id, employee.UpdateParams{
		PayType:      new(employee.PaySalary),
		AnnualSalary: new(decimal.RequireFromString("65000")),
	})
	require.NoError(t, err)
	assert.Equal(t, employee.PaySalary, e.PayType)
	assert.True(t, e.AnnualSalary.Equal(decimal.RequireFromString("65000")))
}
