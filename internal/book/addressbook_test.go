package book

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func mustRecord(t *testing.T, name string, phones ...string) *Record {
	t.Helper()
	r, err := NewRecord(name)
	if err != nil {
		t.Fatalf("NewRecord(%q) error = %v", name, err)
	}
	for _, p := range phones {
		if err := r.AddPhone(p); err != nil {
			t.Fatalf("AddPhone(%q) error = %v", p, err)
		}
	}
	return r
}

func TestAddressBook_AddAndFind(t *testing.T) {
	b := New()
	b.Add(mustRecord(t, "Alice", "1234567890"))

	r, ok := b.Find("Alice")
	if !ok {
		t.Fatal("Find(Alice) not found")
	}
	if r.Name() != "Alice" {
		t.Errorf("Name() = %q, want Alice", r.Name())
	}
	if _, ok := b.Find("Bob"); ok {
		t.Error("Find(Bob) found a contact that was never added")
	}
}

func TestAddressBook_Add_OverwriteReplacesEntirely(t *testing.T) {
	// Given a book with Alice holding one phone
	b := New()
	b.Add(mustRecord(t, "Alice", "1234567890"))

	// When a new Alice record with a different phone is added
	b.Add(mustRecord(t, "Alice", "0987654321"))

	// Then the second record fully replaces the first; phones do not merge
	r, _ := b.Find("Alice")
	phones := r.Phones()
	if len(phones) != 1 || phones[0].String() != "0987654321" {
		t.Errorf("phones = %v, want [0987654321] (last write wins)", phones)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}

func TestAddressBook_Add_OverwriteKeepsOrderSlot(t *testing.T) {
	b := New()
	b.Add(mustRecord(t, "Alice"))
	b.Add(mustRecord(t, "Bob"))
	b.Add(mustRecord(t, "Alice", "1234567890"))

	records := b.Records()
	if len(records) != 2 {
		t.Fatalf("Records() len = %d, want 2", len(records))
	}
	if records[0].Name() != "Alice" || records[1].Name() != "Bob" {
		t.Errorf("order = [%s, %s], want [Alice, Bob]", records[0].Name(), records[1].Name())
	}
}

func TestAddressBook_Delete(t *testing.T) {
	b := New()
	b.Add(mustRecord(t, "Alice"))
	b.Add(mustRecord(t, "Bob"))

	if err := b.Delete("Alice"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := b.Find("Alice"); ok {
		t.Error("Alice still present after Delete")
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
	records := b.Records()
	if len(records) != 1 || records[0].Name() != "Bob" {
		t.Errorf("Records() = %v, want [Bob]", records)
	}
}

func TestAddressBook_Delete_NotFound(t *testing.T) {
	b := New()
	err := b.Delete("Alice")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestAddressBook_Records_InsertionOrder(t *testing.T) {
	b := New()
	for _, name := range []string{"Charlie", "Alice", "Bob"} {
		b.Add(mustRecord(t, name))
	}

	var got []string
	for _, r := range b.Records() {
		got = append(got, r.Name())
	}
	want := []string{"Charlie", "Alice", "Bob"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Records() order = %v, want %v", got, want)
		}
	}
}

// --- UpcomingBirthdays ---

// date builds a UTC date for birthday window tests.
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func withBirthday(t *testing.T, name, bday string) *Record {
	t.Helper()
	r := mustRecord(t, name)
	if err := r.SetBirthday(bday); err != nil {
		t.Fatalf("SetBirthday(%q) error = %v", bday, err)
	}
	return r
}

func TestUpcomingBirthdays_Empty(t *testing.T) {
	b := New()
	b.Add(mustRecord(t, "Alice", "1234567890"))

	got := b.UpcomingBirthdays(date(2024, time.June, 8))
	if len(got) != 0 {
		t.Errorf("UpcomingBirthdays() = %v, want empty", got)
	}
}

func TestUpcomingBirthdays_WithinWindow(t *testing.T) {
	// Given Alice with birthday 10.06, today 08.06.2024 (a Saturday);
	// the window is [08.06.2024, 14.06.2024]
	b := New()
	b.Add(withBirthday(t, "Alice", "10.06.1990"))

	got := b.UpcomingBirthdays(date(2024, time.June, 8))

	// Then Alice appears; 10.06.2024 is a Monday so the greeting date
	// is the birthday itself
	if len(got) != 1 {
		t.Fatalf("UpcomingBirthdays() len = %d, want 1", len(got))
	}
	if got[0].Name != "Alice" {
		t.Errorf("Name = %q, want Alice", got[0].Name)
	}
	if want := date(2024, time.June, 10); !got[0].Date.Equal(want) {
		t.Errorf("Date = %v, want %v", got[0].Date, want)
	}
}

func TestUpcomingBirthdays_WindowBounds(t *testing.T) {
	today := date(2024, time.June, 10) // Monday

	tests := []struct {
		name string
		bday string
		want bool
	}{
		{name: "today inclusive", bday: "10.06.1990", want: true},
		{name: "sixth day inclusive", bday: "16.06.1990", want: true},
		{name: "seventh day excluded", bday: "17.06.1990", want: false},
		{name: "yesterday wraps to next year", bday: "09.06.1990", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			b.Add(withBirthday(t, "X", tt.bday))
			got := b.UpcomingBirthdays(today)
			if (len(got) == 1) != tt.want {
				t.Errorf("UpcomingBirthdays() = %v, want included=%v", got, tt.want)
			}
		})
	}
}

func TestUpcomingBirthdays_WeekendShift(t *testing.T) {
	today := date(2024, time.June, 10) // Monday

	tests := []struct {
		name string
		bday string
		want time.Time
	}{
		// 15.06.2024 is a Saturday; greeting shifts +2 to Monday 17.06.
		{name: "saturday to monday", bday: "15.06.1985", want: date(2024, time.June, 17)},
		// 16.06.2024 is a Sunday; greeting shifts +1 to Monday 17.06.
		{name: "sunday to monday", bday: "16.06.1985", want: date(2024, time.June, 17)},
		// 12.06.2024 is a Wednesday; no shift.
		{name: "weekday unchanged", bday: "12.06.1985", want: date(2024, time.June, 12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			b.Add(withBirthday(t, "X", tt.bday))

			got := b.UpcomingBirthdays(today)
			if len(got) != 1 {
				t.Fatalf("UpcomingBirthdays() len = %d, want 1", len(got))
			}
			if !got[0].Date.Equal(tt.want) {
				t.Errorf("greeting date = %v, want %v", got[0].Date, tt.want)
			}
		})
	}
}

func TestUpcomingBirthdays_WeekendShiftKeepsStoredBirthday(t *testing.T) {
	b := New()
	b.Add(withBirthday(t, "Alice", "15.06.1985"))

	_ = b.UpcomingBirthdays(date(2024, time.June, 10))

	r, _ := b.Find("Alice")
	bd, _ := r.Birthday()
	if bd.String() != "15.06.1985" {
		t.Errorf("stored birthday = %q, want unchanged 15.06.1985", bd)
	}
}

func TestUpcomingBirthdays_YearRollover(t *testing.T) {
	// Late December window spanning New Year: birthday on 02.01 anchors
	// to next year and still lands inside the window.
	b := New()
	b.Add(withBirthday(t, "NewYear", "02.01.1990"))

	got := b.UpcomingBirthdays(date(2024, time.December, 30))
	if len(got) != 1 {
		t.Fatalf("UpcomingBirthdays() len = %d, want 1", len(got))
	}
	// 02.01.2025 is a Thursday; no shift.
	if want := date(2025, time.January, 2); !got[0].Date.Equal(want) {
		t.Errorf("Date = %v, want %v", got[0].Date, want)
	}
}

func TestUpcomingBirthdays_SortedByGreetingDate(t *testing.T) {
	today := date(2024, time.June, 10) // Monday

	b := New()
	b.Add(withBirthday(t, "Later", "14.06.1990"))
	b.Add(withBirthday(t, "Sooner", "11.06.1990"))
	b.Add(withBirthday(t, "Same", "14.06.1985"))

	got := b.UpcomingBirthdays(today)
	if len(got) != 3 {
		t.Fatalf("UpcomingBirthdays() len = %d, want 3", len(got))
	}
	if got[0].Name != "Sooner" {
		t.Errorf("got[0] = %q, want Sooner", got[0].Name)
	}
	// Ties keep book iteration order.
	if got[1].Name != "Later" || got[2].Name != "Same" {
		t.Errorf("tie order = [%s, %s], want [Later, Same]", got[1].Name, got[2].Name)
	}
}

// --- JSON round-trip ---

func TestAddressBook_JSONRoundTrip(t *testing.T) {
	b := New()
	alice := mustRecord(t, "Alice", "1234567890", "0987654321")
	if err := alice.SetBirthday("10.06.1990"); err != nil {
		t.Fatal(err)
	}
	b.Add(alice)
	b.Add(mustRecord(t, "Bob", "5555555555"))
	b.Add(mustRecord(t, "Carol"))

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	restored := New()
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if restored.Len() != 3 {
		t.Fatalf("restored Len() = %d, want 3", restored.Len())
	}
	for i, r := range b.Records() {
		got := restored.Records()[i]
		if got.String() != r.String() {
			t.Errorf("record %d = %q, want %q", i, got.String(), r.String())
		}
	}
}

func TestAddressBook_UnmarshalRejectsCorruptData(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "bad phone", data: `{"contacts":[{"name":"Alice","phones":["123"]}]}`},
		{name: "bad birthday", data: `{"contacts":[{"name":"Alice","birthday":"June 10"}]}`},
		{name: "empty name", data: `{"contacts":[{"name":""}]}`},
		{name: "not json", data: `{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			if err := json.Unmarshal([]byte(tt.data), b); err == nil {
				t.Error("Unmarshal() error = nil, want validation failure")
			}
		})
	}
}
