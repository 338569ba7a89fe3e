// Command smoke walks the API end to end against a running server: it signs
// in as the demo user, exercises every collection, and drives an invoice and
// a bill through the full draft/posted/paid/void lifecycle, checking the
// balance arithmetic at each step. It exits non-zero if any step fails.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	demoEmail    = "demo@finchbooks.com"
	demoPassword = "Password123!"
)

var (
	passMark  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("PASS")
	failMark  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")).Render("FAIL")
	heading   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).PaddingTop(1)
	faintText = lipgloss.NewStyle().Faint(true)
)

func main() {
	base := flag.String("base", envOr("SMOKE_BASE_URL", "http://localhost:8080"), "base URL of the API server")
	flag.Parse()

	c := &client{
		baseURL: *base + "/api",
		http:    &http.Client{Timeout: 30 * time.Second},
	}

	fmt.Println(faintText.Render("target: " + c.baseURL))

	r := &runner{}
	walk(r, c)

	fmt.Println()
	summary := fmt.Sprintf("%d passed, %d failed", r.passed, r.failed)
	if r.failed > 0 {
		fmt.Println(failMark, summary)
		os.Exit(1)
	}
	fmt.Println(passMark, summary)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

type client struct {
	baseURL string
	http    *http.Client
	token   string
}

// do sends a JSON request and decodes the response into out when out is
// non-nil. The returned status lets steps assert failure paths without
// treating a non-2xx as a transport error.
func (c *client) do(method, path string, body, out any) (int, error) {
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return 0, fmt.Errorf("encoding request: %w", err)
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, &payload)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
		}
	}

	return resp.StatusCode, nil
}

type runner struct {
	passed int
	failed int
}

func (r *runner) step(name string, fn func() error) {
	if err := fn(); err != nil {
		r.failed++
		fmt.Printf("%s %s: %v\n", failMark, name, err)

		return
	}

	r.passed++
	fmt.Printf("%s %s\n", passMark, name)
}

func (r *runner) section(title string) {
	fmt.Println(heading.Render(title))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expectStatus(got, want int) error {
	if got != want {
		return fmt.Errorf("status = %d, want %d", got, want)
	}

	return nil
}

type errorEnvelope struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Path       string `json:"path"`
}

type listEnvelope struct {
	Items    json.RawMessage `json:"items"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

type lineIn struct {
	LineNumber     int              `json:"line_number"`
	LineType       string           `json:"line_type"`
	ItemID         *uuid.UUID       `json:"item_id,omitempty"`
	Description    string           `json:"description,omitempty"`
	Quantity       decimal.Decimal  `json:"quantity"`
	UnitPrice      decimal.Decimal  `json:"unit_price"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	TaxRate        *decimal.Decimal `json:"tax_rate,omitempty"`
	TaxAmount      *decimal.Decimal `json:"tax_amount,omitempty"`
}

type lineOut struct {
	LineNumber int             `json:"line_number"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

type documentOut struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	Type          string          `json:"transaction_type"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	BalanceDue    decimal.Decimal `json:"balance_due"`
	Status        string          `json:"status"`
	IsPosted      bool            `json:"is_posted"`
	IsVoid        bool            `json:"is_void"`
	PostingDate   string          `json:"posting_date"`
	VoidReason    string          `json:"void_reason"`
	Memo          string          `json:"memo"`
	Lines         []lineOut       `json:"lines"`
}

func checkTotals(doc documentOut, subtotal, tax, total string) error {
	if !doc.Subtotal.Equal(dec(subtotal)) {
		return fmt.Errorf("subtotal = %s, want %s", doc.Subtotal, subtotal)
	}
	if !doc.TaxAmount.Equal(dec(tax)) {
		return fmt.Errorf("tax_amount = %s, want %s", doc.TaxAmount, tax)
	}
	if !doc.TotalAmount.Equal(dec(total)) {
		return fmt.Errorf("total_amount = %s, want %s", doc.TotalAmount, total)
	}

	return nil
}

func walk(r *runner, c *client) {
	var (
		companyID  uuid.UUID
		accountID  uuid.UUID
		customerID uuid.UUID
		vendorID   uuid.UUID
		itemID     uuid.UUID
		invoiceID  uuid.UUID
		scrapID    uuid.UUID
		billID     uuid.UUID
	)

	r.section("platform")

	r.step("root banner", func() error {
		var got messageEnvelope
		status, err := c.do(http.MethodGet, "/", nil, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusOK); err != nil {
			return err
		}
		if got.Message == "" {
			return fmt.Errorf("empty banner message")
		}

		return nil
	})

	r.step("health", func() error {
		var got struct {
			Status string `json:"status"`
		}
		status, err := c.do(http.MethodGet, "/health", nil, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusOK); err != nil {
			return err
		}
		if got.Status != "healthy" {
			return fmt.Errorf("status = %q, want healthy", got.Status)
		}

		return nil
	})

	r.section("auth")

	var refreshToken string

	r.step("login demo user", func() error {
		var got struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
			User         struct {
				Email string `json:"email"`
			} `json:"user"`
		}
		status, err := c.do(http.MethodPost, "/auth/login", map[string]string{
			"email":    demoEmail,
			"password": demoPassword,
		}, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusOK); err != nil {
			return err
		}
		if got.AccessToken == "" || got.RefreshToken == "" {
			return fmt.Errorf("missing tokens in login response")
		}
		if got.User.Email != demoEmail {
			return fmt.Errorf("user email = %q, want %q", got.User.Email, demoEmail)
		}

		c.token = got.AccessToken
		refreshToken = got.RefreshToken

		return nil
	})

	r.step("refresh token", func() error {
		var got struct {
			AccessToken string `json:"access_token"`
		}
		status, err := c.do(http.MethodPost, "/auth/refresh-token", map[string]string{
			"refresh_token": refreshToken,
		}, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusOK); err != nil {
			return err
		}
		if got.AccessToken == "" {
			return fmt.Errorf("missing access token in refresh response")
		}

		c.token = got.AccessToken

		return nil
	})

	r.step("list companies", func() error {
		var got []struct {
			Company struct {
				CompanyID uuid.UUID `json:"company_id"`
			} `json:"company"`
		}
		status, err := c.do(http.MethodGet, "/auth/companies", nil, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusOK); err != nil {
			return err
		}
		if len(got) == 0 {
			return fmt.Errorf("demo user has no companies")
		}

		companyID = got[0].Company.CompanyID

		return nil
	})

	r.step("grant company access", func() error {
		var got messageEnvelope
		status, err := c.do(http.MethodPost, "/auth/companies/"+companyID.String()+"/access", nil, &got)
		if err != nil {
			return err
		}

		return expectStatus(status, http.StatusOK)
	})

	prefix := "/companies/" + companyID.String()

	r.section("accounts")

	r.step("create account", func() error {
		var got struct {
			AccountID      uuid.UUID       `json:"account_id"`
			CurrentBalance decimal.Decimal `json:"current_balance"`
		}
		status, err := c.do(http.MethodPost, prefix+"/accounts/", map[string]any{
			"account_name":    "Smoke Checking",
			"account_type":    "assets",
			"account_number":  "1010",
			"opening_balance": "500.00",
		}, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusCreated); err != nil {
			return err
		}
		if !got.CurrentBalance.Equal(dec("500")) {
			return fmt.Errorf("current_balance = %s, want 500", got.CurrentBalance)
		}

		accountID = got.AccountID

		return nil
	})

	r.step("list accounts", func() error {
		var got listEnvelope
		status, err := c.do(http.MethodGet, prefix+"/accounts/", nil, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusOK); err != nil {
			return err
		}
		if got.Total < 1 {
			return fmt.Errorf("total = %d, want at least 1", got.Total)
		}

		return nil
	})

	r.step("get account", func() error {
		var got struct {
			AccountID uuid.UUID `json:"account_id"`
		}
		status, err := c.do(http.MethodGet, prefix+"/accounts/"+accountID.String(), nil, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusOK); err != nil {
			return err
		}
		if got.AccountID != accountID {
			return fmt.Errorf("account_id = %s, want %s", got.AccountID, accountID)
		}

		return nil
	})

	r.step("update account", func() error {
		var got struct {
			AccountName string `json:"account_name"`
		}
		status, err := c.do(http.MethodPut, prefix+"/accounts/"+accountID.String(), map[string]any{
			"account_name": "Smoke Checking (renamed)",
		}, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusOK); err != nil {
			return err
		}
		if got.AccountName != "Smoke Checking (renamed)" {
			return fmt.Errorf("account_name = %q after update", got.AccountName)
		}

		return nil
	})

	r.step("merge accounts", func() error {
		var scratch struct {
			AccountID uuid.UUID `json:"account_id"`
		}
		status, err := c.do(http.MethodPost, prefix+"/accounts/", map[string]any{
			"account_name": "Smoke Duplicate",
			"account_type": "assets",
		}, &scratch)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusCreated); err != nil {
			return err
		}

		var got messageEnvelope
		status, err = c.do(http.MethodPost,
			prefix+"/accounts/"+scratch.AccountID.String()+"/merge?target_account_id="+accountID.String(), nil, &got)
		if err != nil {
			return err
		}

		return expectStatus(status, http.StatusOK)
	})

	r.section("parties and catalog")

	r.step("create customer", func() error {
		var got struct {
			CustomerID uuid.UUID `json:"customer_id"`
		}
		status, err := c.do(http.MethodPost, prefix+"/customers/", map[string]any{
			"customer_name": "Acme Corp",
			"customer_type": "business",
			"company_name":  "Acme Corporation",
			"email":         "billing@acme.example",
		}, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusCreated); err != nil {
			return err
		}

		customerID = got.CustomerID

		return nil
	})

	r.step("customer starts with zero balance", func() error {
		var got struct {
			Balance decimal.Decimal `json:"balance"`
		}
		status, err := c.do(http.MethodGet, prefix+"/customers/"+customerID.String()+"/balance", nil, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusOK); err != nil {
			return err
		}
		if !got.Balance.IsZero() {
			return fmt.Errorf("balance = %s, want 0", got.Balance)
		}

		return nil
	})

	r.step("create vendor", func() error {
		var got struct {
			VendorID uuid.UUID `json:"vendor_id"`
		}
		status, err := c.do(http.MethodPost, prefix+"/vendors/", map[string]any{
			"vendor_name":   "Office Supply Co",
			"email":         "orders@officesupply.example",
			"eligible_1099": true,
		}, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusCreated); err != nil {
			return err
		}

		vendorID = got.VendorID

		return nil
	})

	r.step("create item", func() error {
		var got struct {
			ItemID uuid.UUID `json:"item_id"`
		}
		status, err := c.do(http.MethodPost, prefix+"/items/", map[string]any{
			"item_name":   "Consulting Hour",
			"item_type":   "service",
			"sales_price": "100.00",
		}, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusCreated); err != nil {
			return err
		}

		itemID = got.ItemID

		return nil
	})

	r.step("create employee", func() error {
		var got struct {
			EmployeeID uuid.UUID `json:"employee_id"`
		}
		status, err := c.do(http.MethodPost, prefix+"/employees/", map[string]any{
			"first_name": "Jordan",
			"last_name":  "Reyes",
			"email":      "jordan@finchbooks.example",
			"hire_date":  "2024-01-15",
			"pay_type":   "salary",
		}, &got)
		if err != nil {
			return err
		}

		return expectStatus(status, http.StatusCreated)
	})

	r.section("invoice lifecycle")

	r.step("create invoice", func() error {
		var got documentOut
		status, err := c.do(http.MethodPost, prefix+"/invoices/", map[string]any{
			"transaction_type": "invoice",
			"transaction_date": "2024-03-01",
			"due_date":         "2024-03-31",
			"customer_id":      customerID,
			"lines": []lineIn{
				{
					LineNumber:     1,
					LineType:       "item",
					ItemID:         &itemID,
					Description:    "Consulting",
					Quantity:       dec("2"),
					UnitPrice:      dec("100"),
					DiscountAmount: dec("10"),
					TaxRate:        new(dec("15")),
				},
				{
					LineNumber:     2,
					LineType:       "item",
					ItemID:         &itemID,
					Description:    "Review",
					Quantity:       dec("1"),
					UnitPrice:      dec("50"),
					DiscountAmount: dec("5"),
					TaxRate:        new(dec("20")),
				},
			},
		}, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusCreated); err != nil {
			return err
		}
		if err := checkTotals(got, "235", "40", "275"); err != nil {
			return err
		}
		if !got.BalanceDue.IsZero() {
			return fmt.Errorf("draft balance_due = %s, want 0", got.BalanceDue)
		}
		if got.Status != "draft" {
			return fmt.Errorf("status = %q, want draft", got.Status)
		}

		invoiceID = got.TransactionID

		return nil
	})

	r.step("get invoice", func() error {
		var got documentOut
		status, err := c.do(http.MethodGet, prefix+"/invoices/"+invoiceID.String(), nil, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusOK); err != nil {
			return err
		}
		if len(got.Lines) != 2 {
			return fmt.Errorf("lines = %d, want 2", len(got.Lines))
		}

		return nil
	})

	r.step("update invoice memo", func() error {
		var got documentOut
		status, err := c.do(http.MethodPut, prefix+"/invoices/"+invoiceID.String(), map[string]any{
			"memo": "march retainer",
		}, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusOK); err != nil {
			return err
		}
		if got.Memo != "march retainer" {
			return fmt.Errorf("memo = %q after update", got.Memo)
		}

		return nil
	})

	r.step("post invoice", func() error {
		var got documentOut
		status, err := c.do(http.MethodPost, prefix+"/transactions/"+invoiceID.String()+"/post", map[string]any{
			"posting_date": "2024-03-01",
		}, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusOK); err != nil {
			return err
		}
		if !got.IsPosted {
			return fmt.Errorf("is_posted = false after posting")
		}
		if !got.BalanceDue.Equal(dec("275")) {
			return fmt.Errorf("balance_due = %s, want 275", got.BalanceDue)
		}
		if got.Status != "posted" {
			return fmt.Errorf("status = %q, want posted", got.Status)
		}

		return nil
	})

	r.step("line edits rejected after posting", func() error {
		var got errorEnvelope
		status, err := c.do(http.MethodPut, prefix+"/invoices/"+invoiceID.String(), map[string]any{
			"lines": []lineIn{
				{LineNumber: 1, LineType: "item", Quantity: dec("9"), UnitPrice: dec("1")},
			},
		}, &got)
		if err != nil {
			return err
		}

		return expectStatus(status, http.StatusConflict)
	})

	r.step("customer balance reflects posting", func() error {
		var got struct {
			Balance decimal.Decimal `json:"balance"`
		}
		status, err := c.do(http.MethodGet, prefix+"/customers/"+customerID.String()+"/balance", nil, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusOK); err != nil {
			return err
		}
		if !got.Balance.Equal(dec("275")) {
			return fmt.Errorf("balance = %s, want 275", got.Balance)
		}

		return nil
	})

	r.section("payments")

	r.step("payment settles invoice", func() error {
		var got struct {
			PaymentID       uuid.UUID       `json:"payment_id"`
			UnappliedAmount decimal.Decimal `json:"unapplied_amount"`
		}
		status, err := c.do(http.MethodPost, prefix+"/payments/", map[string]any{
			"customer_id":     customerID,
			"payment_date":    "2024-03-10",
			"payment_method":  "check",
			"amount_received": "275.00",
			"applications": []map[string]any{
				{"transaction_id": invoiceID, "amount_applied": "275.00"},
			},
		}, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusCreated); err != nil {
			return err
		}
		if !got.UnappliedAmount.IsZero() {
			return fmt.Errorf("unapplied_amount = %s, want 0", got.UnappliedAmount)
		}

		return nil
	})

	r.step("invoice reads as paid", func() error {
		var got documentOut
		status, err := c.do(http.MethodGet, prefix+"/invoices/"+invoiceID.String(), nil, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusOK); err != nil {
			return err
		}
		if !got.BalanceDue.IsZero() {
			return fmt.Errorf("balance_due = %s, want 0", got.BalanceDue)
		}
		if got.Status != "paid" {
			return fmt.Errorf("status = %q, want paid", got.Status)
		}

		return nil
	})

	r.step("paid invoice cannot be deleted", func() error {
		var got errorEnvelope
		status, err := c.do(http.MethodDelete, prefix+"/invoices/"+invoiceID.String(), nil, &got)
		if err != nil {
			return err
		}

		return expectStatus(status, http.StatusConflict)
	})

	r.section("overpayment and void")

	r.step("create and post second invoice", func() error {
		var got documentOut
		status, err := c.do(http.MethodPost, prefix+"/invoices/", map[string]any{
			"transaction_type": "invoice",
			"transaction_date": "2024-04-01",
			"customer_id":      customerID,
			"lines": []lineIn{
				{LineNumber: 1, LineType: "item", ItemID: &itemID, Quantity: dec("1"), UnitPrice: dec("100")},
			},
		}, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusCreated); err != nil {
			return err
		}

		scrapID = got.TransactionID

		status, err = c.do(http.MethodPost, prefix+"/transactions/"+scrapID.String()+"/post", map[string]any{
			"posting_date": "2024-04-01",
		}, &got)
		if err != nil {
			return err
		}

		return expectStatus(status, http.StatusOK)
	})

	r.step("overpayment rejected", func() error {
		var got errorEnvelope
		status, err := c.do(http.MethodPost, prefix+"/payments/", map[string]any{
			"customer_id":     customerID,
			"payment_date":    "2024-04-02",
			"amount_received": "300.00",
			"applications": []map[string]any{
				{"transaction_id": scrapID, "amount_applied": "300.00"},
			},
		}, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusConflict); err != nil {
			return err
		}
		if got.StatusCode != http.StatusConflict {
			return fmt.Errorf("error envelope status_code = %d, want 409", got.StatusCode)
		}

		return nil
	})

	r.step("void second invoice", func() error {
		var got documentOut
		status, err := c.do(http.MethodPost, prefix+"/transactions/"+scrapID.String()+"/void", map[string]any{
			"reason": "entered twice",
		}, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusOK); err != nil {
			return err
		}
		if !got.IsVoid {
			return fmt.Errorf("is_void = false after voiding")
		}
		if !got.BalanceDue.IsZero() {
			return fmt.Errorf("balance_due = %s after voiding, want 0", got.BalanceDue)
		}
		if got.Status != "void" {
			return fmt.Errorf("status = %q, want void", got.Status)
		}

		return nil
	})

	r.step("voided invoice excluded from customer balance", func() error {
		var got struct {
			Balance decimal.Decimal `json:"balance"`
		}
		status, err := c.do(http.MethodGet, prefix+"/customers/"+customerID.String()+"/balance", nil, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusOK); err != nil {
			return err
		}
		if !got.Balance.IsZero() {
			return fmt.Errorf("balance = %s, want 0", got.Balance)
		}

		return nil
	})

	r.section("bill lifecycle")

	r.step("create bill", func() error {
		var got documentOut
		status, err := c.do(http.MethodPost, prefix+"/bills/", map[string]any{
			"transaction_type": "bill",
			"transaction_date": "2024-05-01",
			"due_date":         "2024-05-31",
			"vendor_id":        vendorID,
			"lines": []lineIn{
				{
					LineNumber:     1,
					LineType:       "item",
					Description:    "Paper stock",
					Quantity:       dec("3"),
					UnitPrice:      dec("75"),
					DiscountAmount: dec("15"),
					TaxAmount:      new(dec("12")),
				},
				{
					LineNumber:     2,
					LineType:       "item",
					Description:    "Toner",
					Quantity:       dec("10"),
					UnitPrice:      dec("120"),
					DiscountAmount: dec("50"),
					TaxAmount:      new(dec("80")),
				},
			},
		}, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusCreated); err != nil {
			return err
		}
		if err := checkTotals(got, "1360", "92", "1452"); err != nil {
			return err
		}

		billID = got.TransactionID

		return nil
	})

	r.step("post and pay bill", func() error {
		var doc documentOut
		status, err := c.do(http.MethodPost, prefix+"/transactions/"+billID.String()+"/post", map[string]any{
			"posting_date": "2024-05-01",
		}, &doc)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusOK); err != nil {
			return err
		}
		if !doc.BalanceDue.Equal(dec("1452")) {
			return fmt.Errorf("balance_due = %s, want 1452", doc.BalanceDue)
		}

		var pay struct {
			PaymentID uuid.UUID `json:"payment_id"`
		}
		status, err = c.do(http.MethodPost, prefix+"/payments/", map[string]any{
			"payment_date":    "2024-05-15",
			"payment_type":    "bill_payment",
			"amount_received": "1452.00",
			"applications": []map[string]any{
				{"transaction_id": billID, "amount_applied": "1452.00"},
			},
		}, &pay)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusCreated); err != nil {
			return err
		}

		status, err = c.do(http.MethodGet, prefix+"/bills/"+billID.String(), nil, &doc)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusOK); err != nil {
			return err
		}
		if doc.Status != "paid" {
			return fmt.Errorf("bill status = %q, want paid", doc.Status)
		}

		return nil
	})

	r.section("audit trail")

	r.step("audit trail records activity", func() error {
		var got listEnvelope
		status, err := c.do(http.MethodGet, prefix+"/audit-logs/", nil, &got)
		if err != nil {
			return err
		}
		if err := expectStatus(status, http.StatusOK); err != nil {
			return err
		}
		if got.Total == 0 {
			return fmt.Errorf("audit trail is empty after mutations")
		}

		return nil
	})
}
