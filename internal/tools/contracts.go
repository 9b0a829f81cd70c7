package tools

import "github.com/shopspring/decimal"

// Wire contracts for the seven tools. Params decode from the request
// body; results encode to it. Amounts travel as strings so decimals
// survive the trip.

type (
	RegisterParams struct {
		Email    string `json:"email" validate:"required"`
		Name     string `json:"name" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	RegisterResult struct {
		AccountID string `json:"account_id"`
		APIKey    string `json:"api_key"`
		Name      string `json:"name"`
		Email     string `json:"email"`
	}

	RotateKeyParams struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	RotateKeyResult struct {
		AccountID string `json:"account_id"`
		APIKey    string `json:"api_key"`
	}

	AddExpenseParams struct {
		APIKey      string          `json:"api_key" validate:"required"`
		Date        string          `json:"date" validate:"required"`
		Amount      decimal.Decimal `json:"amount" validate:"required"`
		Category    string          `json:"category" validate:"required"`
		Subcategory string          `json:"subcategory"`
		Note        string          `json:"note"`
	}

	AddExpenseResult struct {
		ExpenseID int64 `json:"expense_id"`
	}

	ListExpensesParams struct {
		APIKey    string `json:"api_key" validate:"required"`
		StartDate string `json:"start_date" validate:"required"`
		EndDate   string `json:"end_date" validate:"required"`
	}

	ExpenseView struct {
		ID          int64           `json:"id"`
		Date        string          `json:"date"`
		Amount      decimal.Decimal `json:"amount"`
		Category    string          `json:"category"`
		Subcategory string          `json:"subcategory"`
		Note        string          `json:"note"`
	}

	ListExpensesResult struct {
		Count    int           `json:"count"`
		Expenses []ExpenseView `json:"expenses"`
	}

	SummarizeParams struct {
		APIKey    string `json:"api_key" validate:"required"`
		StartDate string `json:"start_date" validate:"required"`
		EndDate   string `json:"end_date" validate:"required"`
		Category  string `json:"category"`
	}

	CategoryTotalView struct {
		Category string          `json:"category"`
		Total    decimal.Decimal `json:"total"`
		Count    int64           `json:"count"`
	}

	SummarizeResult struct {
		Total     decimal.Decimal     `json:"total"`
		Breakdown []CategoryTotalView `json:"breakdown"`
	}

	DeleteExpenseParams struct {
		APIKey    string `json:"api_key" validate:"required"`
		ExpenseID int64  `json:"expense_id"`
	}

	DeleteExpenseResult struct {
		Success bool `json:"success"`
	}

	CategoriesResult struct {
		Categories []string `json:"categories"`
	}
)
