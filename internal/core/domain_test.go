package core

import (
	"testing"
	"time"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in  string
		out Category
		ok  bool
	}{
		{"Food", Food, true},
		{" Bills ", Bills, true},
		{"Other", Other, true},
		{"food", "", false}, // labels are case sensitive
		{"Groceries", "", false},
		{"", "", false},
	}
	for i, tc := range cases {
		got, err := ParseCategory(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("case %d: expected %q, got %q (err=%v)", i, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("case %d: expected error for %q", i, tc.in)
			}
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.String() != "2024-01-15" {
		t.Fatalf("round trip mismatch: %s", d.String())
	}

	for _, bad := range []string{"", "15/01/2024", "2024-13-01", "yesterday"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Cents: -500}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Date:        NewDate(2024, 1, 15),
		Category:    Food,
		Description: "lunch",
		Amount:      Money{Cents: 1250},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Date: Date{Time: time.Time{}}, Category: Food, Description: "a", Amount: Money{Cents: 1}}, // zero date
		{Date: NewDate(2024, 1, 15), Category: "Groceries", Description: "a", Amount: Money{Cents: 1}},
		{Date: NewDate(2024, 1, 15), Category: Food, Description: "", Amount: Money{Cents: 1}},
		{Date: NewDate(2024, 1, 15), Category: Food, Description: "a", Amount: Money{Cents: 0}},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
