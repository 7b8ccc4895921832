// Package command parses session input lines and translates them into
// address book operations. Errors from the book are rendered once, here,
// as user-facing strings so the session never crashes on bad input.
package command

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smileynet/rolodex/internal/book"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrArgCount = errors.New("command: wrong number of arguments")
	ErrUnknown  = errors.New("command: unknown command")
)

// greetingLayout formats greeting dates in the birthdays listing.
const greetingLayout = "02.01.2006"

// Parse splits an input line into a lowercased command name and its
// arguments. An empty or blank line yields an empty name.
func Parse(line string) (string, []string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil
	}
	return strings.ToLower(parts[0]), parts[1:]
}

// Handler executes commands against a single address book.
type Handler struct {
	book *book.AddressBook

	// Now supplies the current time for the birthdays command.
	// Defaults to time.Now; override in tests.
	Now func() time.Time
}

// NewHandler creates a Handler bound to b.
func NewHandler(b *book.AddressBook) *Handler {
	return &Handler{book: b, Now: time.Now}
}

// Hello returns the session greeting.
func (h *Handler) Hello() string {
	return "How can I help you?"
}

// Add appends a phone to the named contact, creating the contact first
// if needed. The record is only inserted once the phone validates, so a
// bad number never leaves an empty contact behind.
func (h *Handler) Add(name, phone string) (string, error) {
	if r, ok := h.book.Find(name); ok {
		if err := r.AddPhone(phone); err != nil {
			return "", err
		}
		return "Contact updated.", nil
	}

	r, err := book.NewRecord(name)
	if err != nil {
		return "", err
	}
	if err := r.AddPhone(phone); err != nil {
		return "", err
	}
	h.book.Add(r)
	return "Contact added.", nil
}

// Change replaces one of the named contact's phones.
func (h *Handler) Change(name, old, new string) (string, error) {
	r, ok := h.book.Find(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", book.ErrNotFound, name)
	}
	if err := r.EditPhone(old, new); err != nil {
		return "", err
	}
	return "Phone updated.", nil
}

// Phone lists the named contact's phones.
func (h *Handler) Phone(name string) (string, error) {
	r, ok := h.book.Find(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", book.ErrNotFound, name)
	}
	phones := r.Phones()
	if len(phones) == 0 {
		return "No phones.", nil
	}
	parts := make([]string, len(phones))
	for i, p := range phones {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", "), nil
}

// All renders every contact, one line each, in insertion order.
func (h *Handler) All() string {
	if h.book.Len() == 0 {
		return "Address book is empty."
	}
	lines := make([]string, 0, h.book.Len())
	for _, r := range h.book.Records() {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, "\n")
}

// AddBirthday sets the named contact's birthday, creating the contact if
// it does not exist yet. As with Add, the record is only inserted once
// the date validates.
func (h *Handler) AddBirthday(name, date string) (string, error) {
	if r, ok := h.book.Find(name); ok {
		if err := r.SetBirthday(date); err != nil {
			return "", err
		}
		return "Birthday added.", nil
	}

	r, err := book.NewRecord(name)
	if err != nil {
		return "", err
	}
	if err := r.SetBirthday(date); err != nil {
		return "", err
	}
	h.book.Add(r)
	return "Birthday added.", nil
}

// ShowBirthday returns the named contact's birthday.
func (h *Handler) ShowBirthday(name string) (string, error) {
	r, ok := h.book.Find(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", book.ErrNotFound, name)
	}
	bd, ok := r.Birthday()
	if !ok {
		return "No birthday.", nil
	}
	return bd.String(), nil
}

// Birthdays lists greeting dates for the upcoming 7-day window.
func (h *Handler) Birthdays() string {
	greetings := h.book.UpcomingBirthdays(h.Now())
	if len(greetings) == 0 {
		return "No birthdays in upcoming 7 days."
	}
	lines := make([]string, len(greetings))
	for i, g := range greetings {
		lines[i] = fmt.Sprintf("%s: %s", g.Date.Format(greetingLayout), g.Name)
	}
	return strings.Join(lines, "\n")
}

// Delete removes the named contact entirely.
func (h *Handler) Delete(name string) (string, error) {
	if err := h.book.Delete(name); err != nil {
		return "", err
	}
	return "Contact deleted.", nil
}

// RemovePhone removes one phone from the named contact.
func (h *Handler) RemovePhone(name, phone string) (string, error) {
	r, ok := h.book.Find(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", book.ErrNotFound, name)
	}
	if err := r.RemovePhone(phone); err != nil {
		return "", err
	}
	return "Phone removed.", nil
}

// Execute runs the named command with its arguments. Commands that take
// no arguments ignore any trailing ones.
func (h *Handler) Execute(name string, args []string) (string, error) {
	switch name {
	case "hello":
		return h.Hello(), nil
	case "add":
		if err := wantArgs(args, 2); err != nil {
			return "", err
		}
		return h.Add(args[0], args[1])
	case "change":
		if err := wantArgs(args, 3); err != nil {
			return "", err
		}
		return h.Change(args[0], args[1], args[2])
	case "phone":
		if err := wantArgs(args, 1); err != nil {
			return "", err
		}
		return h.Phone(args[0])
	case "all":
		return h.All(), nil
	case "add-birthday":
		if err := wantArgs(args, 2); err != nil {
			return "", err
		}
		return h.AddBirthday(args[0], args[1])
	case "show-birthday":
		if err := wantArgs(args, 1); err != nil {
			return "", err
		}
		return h.ShowBirthday(args[0])
	case "birthdays":
		return h.Birthdays(), nil
	case "delete":
		if err := wantArgs(args, 1); err != nil {
			return "", err
		}
		return h.Delete(args[0])
	case "remove-phone":
		if err := wantArgs(args, 2); err != nil {
			return "", err
		}
		return h.RemovePhone(args[0], args[1])
	case "help":
		return Usage(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknown, name)
	}
}

// Dispatch parses and executes one input line, rendering any error as a
// user-facing reply. quit reports whether the session should end.
func (h *Handler) Dispatch(line string) (reply string, quit bool) {
	name, args := Parse(line)
	switch name {
	case "":
		return "", false
	case "close", "exit":
		return "Good bye!", true
	}

	reply, err := h.Execute(name, args)
	if err != nil {
		return Render(err), false
	}
	return reply, false
}

// Render maps an error to its user-facing reply.
func Render(err error) string {
	switch {
	case errors.Is(err, ErrArgCount):
		return "Not enough or too many arguments provided for this command."
	case errors.Is(err, ErrUnknown):
		return "Unknown command."
	case errors.Is(err, book.ErrInvalidPhone):
		return "Invalid value: phone number must contain exactly 10 digits."
	case errors.Is(err, book.ErrInvalidBirthday):
		return "Invalid value: invalid date format, use DD.MM.YYYY."
	case errors.Is(err, book.ErrEmptyName):
		return "Invalid value: contact name cannot be empty."
	case errors.Is(err, book.ErrNotFound):
		return "Contact not found."
	case errors.Is(err, book.ErrPhoneNotFound):
		return "Phone not found."
	default:
		return fmt.Sprintf("An unexpected error occurred: %v", err)
	}
}

// Usage lists the session commands.
func Usage() string {
	return strings.Join([]string{
		"hello                          greet the bot",
		"add <name> <phone>             add a contact or another phone",
		"change <name> <old> <new>      replace a phone",
		"phone <name>                   show a contact's phones",
		"all                            list every contact",
		"add-birthday <name> <date>     set a birthday (DD.MM.YYYY)",
		"show-birthday <name>           show a contact's birthday",
		"birthdays                      greeting dates for the next 7 days",
		"delete <name>                  remove a contact",
		"remove-phone <name> <phone>    remove one phone",
		"close | exit                   save and leave",
	}, "\n")
}

// wantArgs checks the exact argument count for a command.
func wantArgs(args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w: got %d, want %d", ErrArgCount, len(args), n)
	}
	return nil
}
