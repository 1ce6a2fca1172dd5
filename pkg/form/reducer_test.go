package form

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func loaded(options ...string) State {
	return Reduce(State{}, LocationsLoaded{Options: options})
}

func fields(s State) []string {
	return []string{s.Name, s.Country, s.Error}
}

func TestReduce_LocationsLoadedSelectsFirstOption(t *testing.T) {
	s := loaded("USA", "Canada")

	if s.Country != "USA" {
		t.Fatalf("expected default country USA, got %q", s.Country)
	}
	if !s.LocationsLoaded {
		t.Fatalf("expected locations marked as loaded")
	}
	if diff := cmp.Diff([]string{"USA", "Canada"}, s.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_LocationsFailedLeavesCountryUnset(t *testing.T) {
	s := Reduce(State{}, LocationsFailed{Err: errors.New("boom")})

	if s.Country != "" || s.Error != "" || s.LocationsLoaded {
		t.Fatalf("expected untouched fields, got %+v", s)
	}
}

func TestReduce_AliceScenario(t *testing.T) {
	s := loaded("USA", "Canada")
	s = Reduce(s, NameChanged{Value: "Alice"})
	s = Reduce(s, ValidationStarted{Revision: s.NameRevision})
	s = Reduce(s, ValidationResolved{Revision: s.NameRevision, Valid: true})

	if s.Error != "" {
		t.Fatalf("expected no error, got %q", s.Error)
	}
	if !s.CanAdd() {
		t.Fatalf("expected add to be enabled")
	}

	s = Reduce(s, CountryChanged{Value: "Canada"})
	s = Reduce(s, AddRequested{})

	if diff := cmp.Diff(Table{{Name: "Alice", Country: "Canada"}}, s.Table); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"", "USA", ""}, fields(s)); diff != "" {
		t.Fatalf("fields not reset (-want +got):\n%s", diff)
	}
}

func TestReduce_NameTakenDisablesAdd(t *testing.T) {
	s := loaded("USA")
	s = Reduce(s, NameChanged{Value: "Bob"})
	s = Reduce(s, ValidationResolved{Revision: s.NameRevision, Valid: false})

	if s.Error != MessageNameTaken {
		t.Fatalf("expected %q, got %q", MessageNameTaken, s.Error)
	}
	if !errors.Is(s.Err(), ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", s.Err())
	}
	if s.CanAdd() {
		t.Fatalf("expected add to be disabled")
	}

	before := len(s.Table)
	s = Reduce(s, AddRequested{})
	if len(s.Table) != before {
		t.Fatalf("expected add to be a no-op, table grew to %d", len(s.Table))
	}
}

func TestReduce_ValidationFailureSetsGenericMessage(t *testing.T) {
	s := loaded("USA")
	s = Reduce(s, NameChanged{Value: "Carol"})
	s = Reduce(s, ValidationFailed{Revision: s.NameRevision, Err: errors.New("timeout")})

	if s.Error != MessageValidationError || s.ErrorKind != KindValidationFailure {
		t.Fatalf("unexpected error state: %q (%s)", s.Error, s.ErrorKind)
	}
}

func TestReduce_SuccessfulValidationClearsPreviousError(t *testing.T) {
	s := loaded("USA")
	s = Reduce(s, NameChanged{Value: "Bob"})
	s = Reduce(s, ValidationResolved{Revision: s.NameRevision, Valid: false})
	s = Reduce(s, NameChanged{Value: "Bobby"})
	s = Reduce(s, ValidationResolved{Revision: s.NameRevision, Valid: true})

	if s.Error != "" || s.ErrorKind != KindNone {
		t.Fatalf("expected error cleared, got %q", s.Error)
	}
}

func TestReduce_StaleValidationIsDiscarded(t *testing.T) {
	s := loaded("USA")
	s = Reduce(s, NameChanged{Value: "Bob"})
	stale := s.NameRevision
	s = Reduce(s, NameChanged{Value: "Bobby"})

	s = Reduce(s, ValidationResolved{Revision: stale, Valid: false})
	if s.Error != "" {
		t.Fatalf("expected stale response ignored, got %q", s.Error)
	}

	s = Reduce(s, ValidationFailed{Revision: stale, Err: errors.New("late")})
	if s.Error != "" {
		t.Fatalf("expected stale failure ignored, got %q", s.Error)
	}
}

func TestReduce_ValidationAfterResetIsDiscarded(t *testing.T) {
	s := loaded("USA")
	s = Reduce(s, NameChanged{Value: "Bob"})
	rev := s.NameRevision
	s = Reduce(s, ClearRequested{})

	s = Reduce(s, ValidationResolved{Revision: rev, Valid: false})
	if s.Error != "" {
		t.Fatalf("expected response for cleared name ignored, got %q", s.Error)
	}
}

func TestReduce_DuplicateEntry(t *testing.T) {
	s := loaded("USA", "Canada")
	s = Apply(s, NameChanged{Value: "Alice"}, AddRequested{})
	if len(s.Table) != 1 {
		t.Fatalf("expected one entry, got %d", len(s.Table))
	}

	s = Apply(s, NameChanged{Value: "Alice"}, AddRequested{})

	if len(s.Table) != 1 {
		t.Fatalf("expected table unchanged, got %d entries", len(s.Table))
	}
	if s.Error != MessageDuplicateEntry || !errors.Is(s.Err(), ErrDuplicateEntry) {
		t.Fatalf("expected duplicate error, got %q", s.Error)
	}
	if s.Name != "Alice" {
		t.Fatalf("expected name kept after duplicate, got %q", s.Name)
	}
}

func TestReduce_SameNameDifferentCountryIsNotDuplicate(t *testing.T) {
	s := loaded("USA", "Canada")
	s = Apply(s,
		NameChanged{Value: "Alice"}, AddRequested{},
		NameChanged{Value: "Alice"}, CountryChanged{Value: "Canada"}, AddRequested{},
	)

	want := Table{{Name: "Alice", Country: "USA"}, {Name: "Alice", Country: "Canada"}}
	if diff := cmp.Diff(want, s.Table); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_AddWithEmptyNameIsNoop(t *testing.T) {
	s := loaded("USA")
	next := Reduce(s, AddRequested{})

	if diff := cmp.Diff(s, next, cmpopts.IgnoreFields(State{}, "Version")); diff != "" {
		t.Fatalf("expected no-op (-want +got):\n%s", diff)
	}
}

func TestReduce_ClearResetsFromAnyState(t *testing.T) {
	cases := map[string][]Action{
		"fresh":     nil,
		"typed":     {NameChanged{Value: "Zed"}},
		"country":   {CountryChanged{Value: "Canada"}},
		"taken":     {NameChanged{Value: "Bob"}, ValidationResolved{Revision: 1, Valid: false}},
		"duplicate": {NameChanged{Value: "A"}, AddRequested{}, NameChanged{Value: "A"}, AddRequested{}},
	}

	for name, actions := range cases {
		t.Run(name, func(t *testing.T) {
			s := Apply(loaded("USA", "Canada"), actions...)
			tableBefore := append(Table(nil), s.Table...)
			s = Reduce(s, ClearRequested{})

			if diff := cmp.Diff([]string{"", "USA", ""}, fields(s)); diff != "" {
				t.Fatalf("fields not reset (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tableBefore, s.Table, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("clear touched the table (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReduce_ClearWithoutOptionsLeavesCountryEmpty(t *testing.T) {
	s := Apply(State{}, NameChanged{Value: "x"}, ClearRequested{})
	if s.Country != "" {
		t.Fatalf("expected empty country, got %q", s.Country)
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := Apply(loaded("USA"), NameChanged{Value: "A"}, AddRequested{})
	s.Table = s.Table[:1:1]
	snapshot := s.Clone()

	_ = Apply(s, NameChanged{Value: "B"}, AddRequested{}, LocationsLoaded{Options: []string{"X"}})

	if diff := cmp.Diff(snapshot, s); diff != "" {
		t.Fatalf("input state mutated (-want +got):\n%s", diff)
	}
}

func TestReduce_VersionIncreases(t *testing.T) {
	s := loaded("USA")
	next := Reduce(s, CountryChanged{Value: "USA"})
	if next.Version <= s.Version {
		t.Fatalf("expected version to increase, got %d -> %d", s.Version, next.Version)
	}
}

func TestReduce_ValidationStartedTracksRevision(t *testing.T) {
	s := Apply(loaded("USA"), NameChanged{Value: "A"})
	started := Reduce(s, ValidationStarted{Revision: s.NameRevision})
	if !started.Validating {
		t.Fatalf("expected validating flag")
	}
	ignored := Reduce(s, ValidationStarted{Revision: s.NameRevision - 1})
	if ignored.Validating {
		t.Fatalf("expected stale start ignored")
	}
}
