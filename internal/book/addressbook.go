package book

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// upcomingWindowDays is the length of the upcoming-birthday window,
// counting today as day one.
const upcomingWindowDays = 7

// AddressBook is the full contact collection, keyed by name.
// Iteration order is insertion order; re-adding an existing name
// replaces the record but keeps its position.
type AddressBook struct {
	names   []string
	records map[string]*Record
}

// New creates an empty AddressBook.
func New() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// Add inserts the record, replacing any existing record with the same
// name entirely. Last write wins; phone lists are not merged.
func (b *AddressBook) Add(r *Record) {
	if _, exists := b.records[r.Name()]; !exists {
		b.names = append(b.names, r.Name())
	}
	b.records[r.Name()] = r
}

// Find returns the record for name, if any.
func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Delete removes the record for name.
func (b *AddressBook) Delete(name string) error {
	if _, ok := b.records[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(b.records, name)
	for i, n := range b.names {
		if n == name {
			b.names = append(b.names[:i], b.names[i+1:]...)
			break
		}
	}
	return nil
}

// Records returns all records in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.names))
	for _, name := range b.names {
		out = append(out, b.records[name])
	}
	return out
}

// Len returns the number of records.
func (b *AddressBook) Len() int {
	return len(b.records)
}

// Greeting is one upcoming-birthday result: who to congratulate and when.
// Date is the greeting date, which may differ from the birthday itself
// when the birthday lands on a weekend.
type Greeting struct {
	Name string
	Date time.Time
}

// UpcomingBirthdays returns contacts whose birthday, anchored to the
// current or next year, falls within the 7-day window starting at today.
// Birthdays landing on Saturday or Sunday report a greeting date shifted
// to the following Monday. Results are sorted ascending by greeting date;
// ties keep book iteration order.
func (b *AddressBook) UpcomingBirthdays(today time.Time) []Greeting {
	day := dateOnly(today)
	limit := day.AddDate(0, 0, upcomingWindowDays-1)

	var out []Greeting
	for _, r := range b.Records() {
		bd, ok := r.Birthday()
		if !ok {
			continue
		}

		anchored := anchorYear(bd.Date(), day)
		if anchored.After(limit) {
			continue
		}

		greeting := anchored
		switch anchored.Weekday() {
		case time.Saturday:
			greeting = greeting.AddDate(0, 0, 2)
		case time.Sunday:
			greeting = greeting.AddDate(0, 0, 1)
		}

		out = append(out, Greeting{Name: r.Name(), Date: greeting})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// anchorYear moves bd to today's year, or next year if that date has
// already passed.
func anchorYear(bd, today time.Time) time.Time {
	anchored := time.Date(today.Year(), bd.Month(), bd.Day(), 0, 0, 0, 0, today.Location())
	if anchored.Before(today) {
		anchored = time.Date(today.Year()+1, bd.Month(), bd.Day(), 0, 0, 0, 0, today.Location())
	}
	return anchored
}

// dateOnly truncates t to midnight in its own location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// contactJSON is the persisted shape of a single record.
type contactJSON struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones,omitempty"`
	Birthday string   `json:"birthday,omitempty"`
}

// bookJSON is the persisted shape of the whole book.
type bookJSON struct {
	Contacts []contactJSON `json:"contacts"`
}

// MarshalJSON encodes the book as an ordered contact list.
func (b *AddressBook) MarshalJSON() ([]byte, error) {
	doc := bookJSON{Contacts: make([]contactJSON, 0, b.Len())}
	for _, r := range b.Records() {
		c := contactJSON{Name: r.Name()}
		for _, p := range r.Phones() {
			c.Phones = append(c.Phones, p.String())
		}
		if bd, ok := r.Birthday(); ok {
			c.Birthday = bd.String()
		}
		doc.Contacts = append(doc.Contacts, c)
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes an ordered contact list, re-validating every
// field through the normal constructors so corrupt data is rejected.
func (b *AddressBook) UnmarshalJSON(data []byte) error {
	var doc bookJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	b.names = nil
	b.records = make(map[string]*Record)
	for _, c := range doc.Contacts {
		r, err := NewRecord(c.Name)
		if err != nil {
			return fmt.Errorf("book: contact %q: %w", c.Name, err)
		}
		for _, p := range c.Phones {
			if err := r.AddPhone(p); err != nil {
				return fmt.Errorf("book: contact %q: %w", c.Name, err)
			}
		}
		if c.Birthday != "" {
			if err := r.SetBirthday(c.Birthday); err != nil {
				return fmt.Errorf("book: contact %q: %w", c.Name, err)
			}
		}
		b.Add(r)
	}
	return nil
}
