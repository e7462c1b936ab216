package http

import (
	"fmt"
	"net/http"
	"strings"

	"ledgerd/internal/core"
)

// ExpenseInput holds a parsed, validated expense submission.
type ExpenseInput struct {
	AmountCents int64
	Category    core.Category
	Description string
	Date        core.Date
}

// RequestBodyParser parses expense form submissions.
type RequestBodyParser struct {
	request *http.Request
}

func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	return &RequestBodyParser{request: r}
}

// ParseExpenseInput reads the form fields and converts them into domain values.
// The date field is optional and defaults to today.
func (p *RequestBodyParser) ParseExpenseInput() (ExpenseInput, error) {
	if err := p.request.ParseForm(); err != nil {
		return ExpenseInput{}, fmt.Errorf("invalid form data: %w", err)
	}

	rawAmount := strings.TrimSpace(p.request.FormValue("amount"))
	if rawAmount == "" {
		return ExpenseInput{}, fmt.Errorf("amount is required: %w", core.ErrInvalidAmount)
	}
	cents, err := core.ParseDecimalToCents(rawAmount)
	if err != nil {
		return ExpenseInput{}, err
	}

	rawCategory := strings.TrimSpace(p.request.FormValue("category"))
	if rawCategory == "" {
		return ExpenseInput{}, fmt.Errorf("category is required: %w", core.ErrUnknownCategory)
	}
	category, err := core.ParseCategory(rawCategory)
	if err != nil {
		return ExpenseInput{}, err
	}

	description := strings.TrimSpace(p.request.FormValue("description"))
	if description == "" {
		return ExpenseInput{}, core.ErrEmptyDescription
	}

	date := core.Today()
	if rawDate := strings.TrimSpace(p.request.FormValue("date")); rawDate != "" {
		date, err = core.ParseDate(rawDate)
		if err != nil {
			return ExpenseInput{}, err
		}
	}

	return ExpenseInput{
		AmountCents: cents,
		Category:    category,
		Description: description,
		Date:        date,
	}, nil
}
