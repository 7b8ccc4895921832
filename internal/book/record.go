package book

import (
	"fmt"
	"strings"
)

// Record holds one contact: an immutable name, an ordered list of phones,
// and at most one birthday.
type Record struct {
	name     string
	phones   []Phone
	birthday Birthday
}

// NewRecord creates a Record for the given contact name.
func NewRecord(name string) (*Record, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	return &Record{name: name}, nil
}

// Name returns the contact name.
func (r *Record) Name() string {
	return r.name
}

// Phones returns the contact's phones in insertion order.
// The returned slice is a copy; mutating it does not affect the record.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// AddPhone validates raw and appends it. Duplicate numbers are permitted.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes the first phone matching raw.
func (r *Record) RemovePhone(raw string) error {
	for i, p := range r.phones {
		if p.String() == raw {
			r.phones = append(r.phones[:i], r.phones[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrPhoneNotFound, raw)
}

// EditPhone replaces the first phone matching old with new, in place.
// The phone list is left untouched if old is absent or new is invalid.
// A missing old number is reported before new is validated.
func (r *Record) EditPhone(old, new string) error {
	for i, existing := range r.phones {
		if existing.String() == old {
			p, err := NewPhone(new)
			if err != nil {
				return err
			}
			r.phones[i] = p
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrPhoneNotFound, old)
}

// FindPhone returns the first phone matching raw.
func (r *Record) FindPhone(raw string) (Phone, bool) {
	for _, p := range r.phones {
		if p.String() == raw {
			return p, true
		}
	}
	return "", false
}

// SetBirthday validates raw and sets it, overwriting any prior birthday.
func (r *Record) SetBirthday(raw string) error {
	b, err := NewBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = b
	return nil
}

// Birthday returns the contact's birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	return r.birthday, !r.birthday.IsZero()
}

// String renders the record as a single human-readable line.
func (r *Record) String() string {
	phones := "No phones"
	if len(r.phones) > 0 {
		parts := make([]string, len(r.phones))
		for i, p := range r.phones {
			parts[i] = p.String()
		}
		phones = strings.Join(parts, ", ")
	}
	bday := "No birthday"
	if !r.birthday.IsZero() {
		bday = r.birthday.String()
	}
	return fmt.Sprintf("Contact name: %s, phones: %s, birthday: %s", r.name, phones, bday)
}
