package company_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/finchbooks/finch/internal/company"
	"github.com/finchbooks/finch/internal/errs"
)

func TestService_Create(t *testing.T) {
	ownerID := uuid.New()

	type testCase struct {
		name      string
		params    company.CreateParams
		wantField string
		check     func(t *testing.T, c *company.Company)
	}

	tests := []testCase{
		{
			name: "defaults applied",
			params: company.CreateParams{
				CompanyName: "Finch Books LLC",
			},
			check: func(t *testing.T, c *company.Company) {
				assert.Equal(t, "USD", c.Currency)
				assert.Equal(t, "en-US", c.Language)
				assert.Equal(t, "january", c.FiscalYearStart)
				assert.Equal(t, "january", c.TaxYearStart)
			},
		},
		{
			name: "currency and language normalized",
			params: company.CreateParams{
				CompanyName:     "Finch Books GmbH",
				Currency:        "eur",
				Language:        "de",
				FiscalYearStart: "April",
			},
			check: func(t *testing.T, c *company.Company) {
				assert.Equal(t, "EUR", c.Currency)
				assert.Equal(t, "de", c.Language)
				assert.Equal(t, "april", c.FiscalYearStart)
			},
		},
		{
			name:      "missing name rejected",
			params:    company.CreateParams{},
			wantField: "company_name",
		},
		{
			name: "bogus currency rejected",
			params: company.CreateParams{
				CompanyName: "Finch Books",
				Currency:    "DOLLARS",
			},
			wantField: "currency",
		},
		{
			name: "bogus language rejected",
			params: company.CreateParams{
				CompanyName: "Finch Books",
				Language:    "not a tag",
			},
			wantField: "language",
		},
		{
			name: "bogus fiscal month rejected",
			params: company.CreateParams{
				CompanyName:     "Finch Books",
				FiscalYearStart: "smarch",
			},
			wantField: "fiscal_year_start",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := company.NewMockRepository(ctrl)

			if tt.wantField == "" {
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), ownerID).Return(nil)
			}

			svc := company.NewService(repo)

			c, err := svc.Create(context.Background(), ownerID, tt.params)
			if tt.wantField != "" {
				require.Error(t, err)

				var verr *errs.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantField, verr.Field)

				return
			}

			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestService_Update_CurrencyValidated(t *testing.T) {
	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := company.NewMockRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), id).Return(&company.Company{ID: id, CompanyName: "Finch", Currency: "USD"}, nil)

	svc := company.NewService(repo)

	_, err := svc.Update(context.Background(), id, company.UpdateParams{Currency: new("whatever")})
	require.Error(t, err)

	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "currency", verr.Field)
}

func TestService_PutSettings(t *testing.T) {
	companyID := uuid.New()

	ctrl := gomock.NewController(t)
	repo := company.NewMockRepository(ctrl)

	settings := []company.Setting{
		{Category: "invoicing", Key: "default_terms", Value: "net30"},
		{Category: "invoicing", Key: "footer", Value: "Thank you for your business"},
	}

	repo.EXPECT().PutSettings(gomock.Any(), companyID, settings).Return(nil)

	svc := company.NewService(repo)

	require.NoError(t, svc.PutSettings(context.Background(), companyID, settings))
}

func TestService_PutSettings_MissingKeyRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := company.NewMockRepository(ctrl)

	svc := company.NewService(repo)

	err := svc.PutSettings(context.Background(), uuid.New(), []company.Setting{
		{Category: "invoicing", Key: "default_terms", Value: "net30"},
		{Category: "invoicing", Value: "orphan"},
	})
	require.Error(t, err)

	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 2, verr.LineNumber)
	assert.Equal(t, "key", verr.Field)
}
