package tools

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"ledgerd/internal/core"
	"ledgerd/internal/ledger"
)

// Service is the tool surface: one method per tool, typed params in,
// typed results out. Every failure leaving this package is a taxonomy
// error; nothing below it reaches callers raw.
type Service struct {
	gate     Authenticator
	creds    CredentialStore
	ledger   Ledger
	validate *validator.Validate
}

func NewService(gate Authenticator, creds CredentialStore, ledger Ledger) *Service {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their wire names so missing-field failures map to
	// the caller's view of the payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Service{gate: gate, creds: creds, ledger: ledger, validate: v}
}

func (s *Service) Register(ctx context.Context, p RegisterParams) (RegisterResult, error) {
	if err := s.check(p); err != nil {
		return RegisterResult{}, err
	}
	a, err := s.creds.Register(ctx, p.Email, p.Name, p.Password)
	if err != nil {
		return RegisterResult{}, err
	}
	return RegisterResult{
		AccountID: a.ID,
		APIKey:    a.APIKey,
		Name:      a.Name,
		Email:     a.Email,
	}, nil
}

func (s *Service) RotateKey(ctx context.Context, p RotateKeyParams) (RotateKeyResult, error) {
	if err := s.check(p); err != nil {
		return RotateKeyResult{}, err
	}
	a, err := s.creds.RotateKey(ctx, p.Email, p.Password)
	if err != nil {
		return RotateKeyResult{}, err
	}
	return RotateKeyResult{AccountID: a.ID, APIKey: a.APIKey}, nil
}

func (s *Service) AddExpense(ctx context.Context, p AddExpenseParams) (AddExpenseResult, error) {
	if err := s.check(p); err != nil {
		return AddExpenseResult{}, err
	}
	account, err := s.gate.Authenticate(ctx, p.APIKey)
	if err != nil {
		return AddExpenseResult{}, err
	}
	date, err := core.ParseDate(p.Date)
	if err != nil {
		return AddExpenseResult{}, err
	}

	e, err := s.ledger.Add(ctx, ledger.AddParams{
		AccountID:   account.ID,
		Date:        date,
		Amount:      p.Amount,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Note:        p.Note,
	})
	if err != nil {
		return AddExpenseResult{}, err
	}
	return AddExpenseResult{ExpenseID: e.ID}, nil
}

func (s *Service) ListExpenses(ctx context.Context, p ListExpensesParams) (ListExpensesResult, error) {
	if err := s.check(p); err != nil {
		return ListExpensesResult{}, err
	}
	account, err := s.gate.Authenticate(ctx, p.APIKey)
	if err != nil {
		return ListExpensesResult{}, err
	}
	start, end, err := parseRange(p.StartDate, p.EndDate)
	if err != nil {
		return ListExpensesResult{}, err
	}

	expenses, err := s.ledger.List(ctx, account.ID, start, end)
	if err != nil {
		return ListExpensesResult{}, err
	}

	views := make([]ExpenseView, 0, len(expenses))
	for _, e := range expenses {
		views = append(views, ExpenseView{
			ID:          e.ID,
			Date:        e.Date.String(),
			Amount:      e.Amount,
			Category:    e.Category,
			Subcategory: e.Subcategory,
			Note:        e.Note,
		})
	}
	return ListExpensesResult{Count: len(views), Expenses: views}, nil
}

func (s *Service) Summarize(ctx context.Context, p SummarizeParams) (SummarizeResult, error) {
	if err := s.check(p); err != nil {
		return SummarizeResult{}, err
	}
	account, err := s.gate.Authenticate(ctx, p.APIKey)
	if err != nil {
		return SummarizeResult{}, err
	}
	start, end, err := parseRange(p.StartDate, p.EndDate)
	if err != nil {
		return SummarizeResult{}, err
	}

	sum, err := s.ledger.Summarize(ctx, account.ID, start, end, p.Category)
	if err != nil {
		return SummarizeResult{}, err
	}

	breakdown := make([]CategoryTotalView, 0, len(sum.Breakdown))
	for _, ct := range sum.Breakdown {
		breakdown = append(breakdown, CategoryTotalView{
			Category: ct.Category,
			Total:    ct.Total,
			Count:    ct.Count,
		})
	}
	return SummarizeResult{Total: sum.Total, Breakdown: breakdown}, nil
}

func (s *Service) DeleteExpense(ctx context.Context, p DeleteExpenseParams) (DeleteExpenseResult, error) {
	if err := s.check(p); err != nil {
		return DeleteExpenseResult{}, err
	}
	account, err := s.gate.Authenticate(ctx, p.APIKey)
	if err != nil {
		return DeleteExpenseResult{}, err
	}
	if err := s.ledger.Delete(ctx, account.ID, p.ExpenseID); err != nil {
		return DeleteExpenseResult{}, err
	}
	return DeleteExpenseResult{Success: true}, nil
}

// Categories is account-free and never fails.
func (s *Service) Categories(context.Context) CategoriesResult {
	return CategoriesResult{Categories: core.Categories()}
}

// check runs the required-field validation and maps the first failure to
// its stable taxonomy error.
func (s *Service) check(p any) error {
	err := s.validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return requiredFieldErr(verrs[0].Field())
	}
	return core.Errf(core.KindInvalidInput, "Invalid request.")
}

func requiredFieldErr(field string) error {
	switch field {
	case "email":
		return core.ErrInvalidEmail
	case "name":
		return core.ErrEmptyName
	case "password":
		return core.ErrEmptyPassword
	case "api_key":
		return core.ErrKeyRequired
	case "date", "start_date", "end_date":
		return core.ErrInvalidDate
	case "amount":
		return core.ErrAmountRequired
	case "category":
		return core.ErrEmptyCategory
	default:
		return core.Errf(core.KindInvalidInput, "Missing required field: %s.", field)
	}
}

func parseRange(startDate, endDate string) (core.Date, core.Date, error) {
	start, err := core.ParseDate(startDate)
	if err != nil {
		return core.Date{}, core.Date{}, err
	}
	end, err := core.ParseDate(endDate)
	if err != nil {
		return core.Date{}, core.Date{}, err
	}
	return start, end, nil
}
