package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finchbooks/finch/internal/employee"
)

type employeeResponse struct {
	EmployeeID   uuid.UUID        `json:"employee_id"`
	CompanyID    uuid.UUID        `json:"company_id"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	Email        string           `json:"email,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	AddressLine1 string           `json:"address_line1,omitempty"`
	AddressLine2 string           `json:"address_line2,omitempty"`
	City         string           `json:"city,omitempty"`
	State        string           `json:"state,omitempty"`
	ZipCode      string           `json:"zip_code,omitempty"`
	HireDate     string           `json:"hire_date,omitempty"`
	PayType      employee.PayType `json:"pay_type"`
	HourlyRate   decimal.Decimal  `json:"hourly_rate"`
	AnnualSalary decimal.Decimal  `json:"annual_salary"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func toResponse(e *employee.Employee) employeeResponse {
	resp := employeeResponse{
		EmployeeID:   e.ID,
		CompanyID:    e.CompanyID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		Phone:        e.Phone,
		AddressLine1: e.AddressLine1,
		AddressLine2: e.AddressLine2,
		City:         e.City,
		State:        e.State,
		ZipCode:      e.ZipCode,
		PayType:      e.PayType,
		HourlyRate:   e.HourlyRate,
		AnnualSalary: e.AnnualSalary,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}

	if !e.HireDate.IsZero() {
		resp.HireDate = e.HireDate.Format(time.DateOnly)
	}

	return resp
}

func toResponseList(employees []*employee.Employee) []employeeResponse {
	resp := make([]employeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = toResponse(e)
	}

	return resp
}
