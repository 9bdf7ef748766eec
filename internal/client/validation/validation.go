// Package validation holds the stateless field and date-range rules a record
// must satisfy before it is inserted into a store.
//
// Required-field checks run first, then length checks, then the due-date
// range; the first failure is returned. Every failure is a *Error whose Code
// identifies the rule, and every *Error matches common.ErrValidation.
package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/recordkeeper/internal/client/models"
	"github.com/dmitrijs2005/recordkeeper/internal/common"
)

const (
	MaxNameLength        = 50
	MaxDescriptionLength = 150
	// MaxDueDateYears is the calendar-year horizon for due dates.
	MaxDueDateYears = 2
)

// Code identifies the rule that rejected the input.
type Code string

const (
	CodeNameRequired       Code = "name_required"
	CodeNameTooLong        Code = "name_too_long"
	CodeDescriptionTooLong Code = "description_too_long"
	CodeDateRequired       Code = "date_required"
	CodeDateOutOfRange     Code = "date_out_of_range"
	CodeDateUnparseable    Code = "date_unparseable"
)

type Error struct {
	Code Code
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Is(target error) bool { return target == common.ErrValidation }

var (
	ErrNameRequired       = &Error{Code: CodeNameRequired, Msg: "name is required"}
	ErrNameTooLong        = &Error{Code: CodeNameTooLong, Msg: "name cannot exceed 50 characters"}
	ErrDescriptionTooLong = &Error{Code: CodeDescriptionTooLong, Msg: "description cannot exceed 150 characters"}
	ErrDateRequired       = &Error{Code: CodeDateRequired, Msg: "due date is required"}
	ErrDateOutOfRange     = &Error{Code: CodeDateOutOfRange, Msg: "due date must be between today and two years from today"}
	ErrDateUnparseable    = &Error{Code: CodeDateUnparseable, Msg: "due date must be a valid YYYY-MM-DD date"}
)

// Rules are the variant-specific switches applied by Validate.
type Rules struct {
	RequireDueDate bool
}

func RulesFor(v models.Variant) Rules {
	return Rules{RequireDueDate: v.RequireDueDate}
}

// Validate checks raw input against rules, relative to today.
func Validate(f models.Fields, rules Rules, today time.Time) error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrNameRequired
	}
	if rules.RequireDueDate && strings.TrimSpace(f.DueDate) == "" {
		return ErrDateRequired
	}
	if err := ValidateText(f.Name, f.Description); err != nil {
		return err
	}
	if rules.RequireDueDate {
		return CheckDate(f.DueDate, today)
	}
	return nil
}

// ValidateText enforces the length limits. It does not trim: the limits hold
// for whatever reaches the store, regardless of what the input widget allowed.
func ValidateText(name, description string) error {
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// ValidateDate reports whether candidate is a real calendar date inside
// [today, today+2y], both ends inclusive.
func ValidateDate(candidate string, today time.Time) bool {
	return CheckDate(candidate, today) == nil
}

// CheckDate is ValidateDate with the reason for rejection.
func CheckDate(candidate string, today time.Time) error {
	d, err := time.ParseInLocation(models.DateLayout, strings.TrimSpace(candidate), today.Location())
	if err != nil {
		return ErrDateUnparseable
	}
	lo, hi := DateBounds(today)
	if d.Before(lo) || d.After(hi) {
		return ErrDateOutOfRange
	}
	return nil
}

// DateBounds returns the first and last acceptable due dates for today.
// The upper bound moves by calendar years; a day that does not exist in the
// target month is clamped to the month's last day (Feb 29 -> Feb 28).
func DateBounds(today time.Time) (time.Time, time.Time) {
	y, m, d := today.Date()
	lo := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	return lo, addYears(lo, MaxDueDateYears)
}

func addYears(t time.Time, years int) time.Time {
	y, m, d := t.Date()
	y += years
	if last := daysIn(y, m, t.Location()); d > last {
		d = last
	}
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
