package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Food           Category = "Food"
	Transportation Category = "Transportation"
	Entertainment  Category = "Entertainment"
	Bills          Category = "Bills"
	Shopping       Category = "Shopping"
	Other          Category = "Other"
)

type (
	// Category is one of the fixed expense category labels.
	Category string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Expense struct {
		Date        Date
		Category    Category
		Description string
		Amount      Money
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyDescription = errors.New("empty description")
	ErrUnknownCategory  = errors.New("unknown category")
)

// Categories returns the closed set of category labels in display order.
func Categories() []Category {
	return []Category{Food, Transportation, Entertainment, Bills, Shopping, Other}
}

// ParseCategory validates a label against the fixed category set.
// Unknown labels are rejected here so that every stored record lands in
// exactly one aggregation bucket.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

func (c Category) Validate() error {
	switch c {
	case Food, Transportation, Entertainment, Bills, Shopping, Other:
		return nil
	default:
		return ErrUnknownCategory
	}
}

func (c Category) String() string {
	return string(c)
}

const dateLayout = "2006-01-02"

// ParseDate parses an ISO YYYY-MM-DD date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// NewDate creates a new Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date, truncated to day precision.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String renders the date in the on-disk YYYY-MM-DD format.
func (d Date) String() string {
	return d.Format(dateLayout)
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Category.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	return nil
}
