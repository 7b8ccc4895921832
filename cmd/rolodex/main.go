package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/command"
	"github.com/smileynet/rolodex/internal/config"
	"github.com/smileynet/rolodex/internal/shell"
	"github.com/smileynet/rolodex/internal/store"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for rolodex.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`

	Shell        ShellCmd        `cmd:"" default:"1" help:"Open the interactive session."`
	Add          AddCmd          `cmd:"" help:"Add a contact or another phone for an existing one."`
	Change       ChangeCmd       `cmd:"" help:"Replace one of a contact's phones."`
	Phone        PhoneCmd        `cmd:"" help:"Show a contact's phones."`
	All          AllCmd          `cmd:"" help:"List every contact."`
	AddBirthday  AddBirthdayCmd  `cmd:"" help:"Set a contact's birthday (DD.MM.YYYY)."`
	ShowBirthday ShowBirthdayCmd `cmd:"" help:"Show a contact's birthday."`
	Birthdays    BirthdaysCmd    `cmd:"" help:"Greeting dates for the upcoming 7 days."`
	Delete       DeleteCmd       `cmd:"" help:"Remove a contact."`
	RemovePhone  RemovePhoneCmd  `cmd:"" help:"Remove one phone from a contact."`
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/rolodex/config.yaml"),
		".rolodex/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore builds the file store from config.
func openStore() (*store.FileStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return store.NewFileStore(cfg.Storage.Path), nil
}

// loadBook reads the persisted book, degrading to an empty book when the
// file is unreadable. The warning goes to w; losing a session beats
// refusing to start.
func loadBook(w io.Writer, s *store.FileStore) *book.AddressBook {
	b, err := s.Load()
	if err != nil {
		_, _ = fmt.Fprintf(w, "warning: cannot load %s: %v\nwarning: starting with an empty address book\n", s.Path(), err)
		return book.New()
	}
	return b
}

// bookSaver abstracts persistence for testable command wiring.
type bookSaver interface {
	Save(*book.AddressBook) error
}

// oneShot runs a single handler operation against the persisted book and
// saves afterwards when the operation mutates state.
func oneShot(w io.Writer, s *store.FileStore, mutates bool, fn func(h *command.Handler) (string, error)) error {
	b := loadBook(os.Stderr, s)
	h := command.NewHandler(b)
	return runOne(w, b, h, s, mutates, fn)
}

// runOne executes fn and persists via saver, enabling testable wiring.
func runOne(w io.Writer, b *book.AddressBook, h *command.Handler, saver bookSaver, mutates bool, fn func(h *command.Handler) (string, error)) error {
	reply, err := fn(h)
	if err != nil {
		return err
	}
	if mutates {
		if err := saver.Save(b); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintln(w, reply)
	return nil
}

// ShellCmd opens the interactive session.
type ShellCmd struct {
	Plain bool `help:"Force plain line-mode output even if stdout is a TTY." default:"false"`
}

// Run starts the session, loading the book up front and saving it once
// the session ends.
func (c *ShellCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}

	s := store.NewFileStore(cfg.Storage.Path)
	b := loadBook(os.Stderr, s)
	h := command.NewHandler(b)

	return shell.Run(shell.Options{
		ForcePlain: c.Plain || cfg.UI.Plain,
		Handler:    h,
		Save:       func() error { return s.Save(b) },
	})
}

// AddCmd adds a contact, or another phone to an existing contact.
type AddCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Phone number (10 digits)."`
}

// Run executes the add command.
func (c *AddCmd) Run() error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	return oneShot(os.Stdout, s, true, func(h *command.Handler) (string, error) {
		return h.Add(c.Name, c.Phone)
	})
}

// ChangeCmd replaces one of a contact's phones.
type ChangeCmd struct {
	Name string `arg:"" help:"Contact name."`
	Old  string `arg:"" help:"Phone number to replace."`
	New  string `arg:"" help:"Replacement phone number."`
}

// Run executes the change command.
func (c *ChangeCmd) Run() error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("change: %w", err)
	}
	return oneShot(os.Stdout, s, true, func(h *command.Handler) (string, error) {
		return h.Change(c.Name, c.Old, c.New)
	})
}

// PhoneCmd shows a contact's phones.
type PhoneCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// Run executes the phone command.
func (c *PhoneCmd) Run() error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("phone: %w", err)
	}
	return oneShot(os.Stdout, s, false, func(h *command.Handler) (string, error) {
		return h.Phone(c.Name)
	})
}

// AllCmd lists every contact.
type AllCmd struct{}

// Run executes the all command.
func (c *AllCmd) Run() error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("all: %w", err)
	}
	return oneShot(os.Stdout, s, false, func(h *command.Handler) (string, error) {
		return h.All(), nil
	})
}

// AddBirthdayCmd sets a contact's birthday, creating the contact if needed.
type AddBirthdayCmd struct {
	Name string `arg:"" help:"Contact name."`
	Date string `arg:"" help:"Birthday in DD.MM.YYYY format."`
}

// Run executes the add-birthday command.
func (c *AddBirthdayCmd) Run() error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("add-birthday: %w", err)
	}
	return oneShot(os.Stdout, s, true, func(h *command.Handler) (string, error) {
		return h.AddBirthday(c.Name, c.Date)
	})
}

// ShowBirthdayCmd shows a contact's birthday.
type ShowBirthdayCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// Run executes the show-birthday command.
func (c *ShowBirthdayCmd) Run() error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("show-birthday: %w", err)
	}
	return oneShot(os.Stdout, s, false, func(h *command.Handler) (string, error) {
		return h.ShowBirthday(c.Name)
	})
}

// BirthdaysCmd lists greeting dates for the upcoming week.
type BirthdaysCmd struct{}

// Run executes the birthdays command.
func (c *BirthdaysCmd) Run() error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("birthdays: %w", err)
	}
	return oneShot(os.Stdout, s, false, func(h *command.Handler) (string, error) {
		return h.Birthdays(), nil
	})
}

// DeleteCmd removes a contact entirely.
type DeleteCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// Run executes the delete command.
func (c *DeleteCmd) Run() error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return oneShot(os.Stdout, s, true, func(h *command.Handler) (string, error) {
		return h.Delete(c.Name)
	})
}

// RemovePhoneCmd removes one phone from a contact.
type RemovePhoneCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Phone number to remove."`
}

// Run executes the remove-phone command.
func (c *RemovePhoneCmd) Run() error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("remove-phone: %w", err)
	}
	return oneShot(os.Stdout, s, true, func(h *command.Handler) (string, error) {
		return h.RemovePhone(c.Name, c.Phone)
	})
}

// Exit codes.
const (
	exitSuccess = 0
	exitDomain  = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code. Domain errors
// (bad input, missing contacts) get 1; setup failures (config, storage)
// get 2.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	for _, domain := range []error{
		book.ErrInvalidPhone,
		book.ErrInvalidBirthday,
		book.ErrEmptyName,
		book.ErrNotFound,
		book.ErrPhoneNotFound,
		command.ErrArgCount,
		command.ErrUnknown,
	} {
		if errors.Is(err, domain) {
			return exitDomain
		}
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, kong.Vars{"version": version + " " + commit + " " + date})
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
