package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"ledgerd/internal/core"
)

func parseForm(t *testing.T, form url.Values) (ExpenseInput, error) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return NewRequestBodyParser(req).ParseExpenseInput()
}

func TestParseExpenseInput(t *testing.T) {
	input, err := parseForm(t, url.Values{
		"amount":      {"12,50"},
		"category":    {"Transportation"},
		"description": {"  bus ticket  "},
		"date":        {"2026-08-01"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.AmountCents != 1250 {
		t.Errorf("expected 1250 cents, got %d", input.AmountCents)
	}
	if input.Category != core.Transportation {
		t.Errorf("expected Transportation, got %s", input.Category)
	}
	if input.Description != "bus ticket" {
		t.Errorf("expected trimmed description, got %q", input.Description)
	}
	if input.Date.String() != "2026-08-01" {
		t.Errorf("expected 2026-08-01, got %s", input.Date)
	}
}

func TestParseExpenseInputDefaultsDate(t *testing.T) {
	input, err := parseForm(t, url.Values{
		"amount":      {"5"},
		"category":    {"Other"},
		"description": {"misc"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.Date.String() != core.Today().String() {
		t.Errorf("expected today's date, got %s", input.Date)
	}
}

func TestParseExpenseInputErrors(t *testing.T) {
	cases := []struct {
		name    string
		form    url.Values
		wantErr error
	}{
		{
			name:    "missing amount",
			form:    url.Values{"category": {"Food"}, "description": {"x"}},
			wantErr: core.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			form:    url.Values{"amount": {"-5"}, "category": {"Food"}, "description": {"x"}},
			wantErr: core.ErrInvalidAmount,
		},
		{
			name:    "missing category",
			form:    url.Values{"amount": {"5"}, "description": {"x"}},
			wantErr: core.ErrUnknownCategory,
		},
		{
			name:    "unknown category",
			form:    url.Values{"amount": {"5"}, "category": {"Rent"}, "description": {"x"}},
			wantErr: core.ErrUnknownCategory,
		},
		{
			name:    "blank description",
			form:    url.Values{"amount": {"5"}, "category": {"Food"}, "description": {"   "}},
			wantErr: core.ErrEmptyDescription,
		},
		{
			name:    "bad date",
			form:    url.Values{"amount": {"5"}, "category": {"Food"}, "description": {"x"}, "date": {"28/08/2026"}},
			wantErr: core.ErrInvalidDate,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseForm(t, tc.form)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}
