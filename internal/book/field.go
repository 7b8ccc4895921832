// Package book implements the contact data model: validated phone and
// birthday fields, per-contact records, and the address book with its
// upcoming-birthday computation.
package book

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrInvalidPhone    = errors.New("book: phone must contain exactly 10 digits")
	ErrInvalidBirthday = errors.New("book: birthday must be a real date in DD.MM.YYYY format")
	ErrEmptyName       = errors.New("book: contact name cannot be empty")
	ErrNotFound        = errors.New("book: contact not found")
	ErrPhoneNotFound   = errors.New("book: phone not found")
)

// birthdayLayout is the wire and display format for birthdays.
const birthdayLayout = "02.01.2006"

var phoneRe = regexp.MustCompile(`^\d{10}$`)

// Phone is a validated phone number: exactly 10 decimal digits.
// The zero value is invalid; construct via NewPhone.
type Phone string

// NewPhone validates raw and returns it as a Phone.
func NewPhone(raw string) (Phone, error) {
	if !phoneRe.MatchString(raw) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}
	return Phone(raw), nil
}

// String returns the phone digits as entered.
func (p Phone) String() string {
	return string(p)
}

// Birthday is a validated calendar date in DD.MM.YYYY form.
// It keeps the exact accepted string so values round-trip unchanged.
type Birthday struct {
	raw  string
	date time.Time
}

// birthdayRe rejects strings time.Parse would accept despite missing
// leading zeros (e.g. "5.1.1990").
var birthdayRe = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)

// NewBirthday validates raw as a real DD.MM.YYYY date.
func NewBirthday(raw string) (Birthday, error) {
	if !birthdayRe.MatchString(raw) {
		return Birthday{}, fmt.Errorf("%w: %q", ErrInvalidBirthday, raw)
	}
	d, err := time.Parse(birthdayLayout, raw)
	if err != nil {
		return Birthday{}, fmt.Errorf("%w: %q", ErrInvalidBirthday, raw)
	}
	return Birthday{raw: raw, date: d}, nil
}

// String returns the birthday exactly as it was accepted.
func (b Birthday) String() string {
	return b.raw
}

// Date returns the parsed calendar date.
func (b Birthday) Date() time.Time {
	return b.date
}

// IsZero reports whether b was never set.
func (b Birthday) IsZero() bool {
	return b.raw == ""
}
