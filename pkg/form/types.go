package form

import "errors"

// User-visible messages surfaced through State.Error.
const (
	MessageNameTaken       = "The name is already taken"
	MessageValidationError = "Error validating name"
	MessageDuplicateEntry  = "This entry already exists in the table"
)

// Kind classifies the error currently held by the form.
type Kind string

const (
	KindNone                 Kind = ""
	KindLocationFetchFailure Kind = "location_fetch_failure"
	KindValidationFailure    Kind = "validation_failure"
	KindNameTaken            Kind = "name_taken"
	KindDuplicateEntry       Kind = "duplicate_entry"
)

var (
	// ErrLocationFetch is logged when country options cannot be loaded. It never
	// reaches State.Error.
	ErrLocationFetch = errors.New("form: location fetch failed")
	// ErrValidation reports that the name validator itself failed.
	ErrValidation = errors.New("form: name validation failed")
	// ErrNameTaken reports that the validator rejected the name.
	ErrNameTaken = errors.New("form: name already taken")
	// ErrDuplicateEntry reports an Add of a pair already present in the table.
	ErrDuplicateEntry = errors.New("form: duplicate entry")
)

// Err maps the kind to its sentinel error.
func (k Kind) Err() error {
	switch k {
	case KindLocationFetchFailure:
		return ErrLocationFetch
	case KindValidationFailure:
		return ErrValidation
	case KindNameTaken:
		return ErrNameTaken
	case KindDuplicateEntry:
		return ErrDuplicateEntry
	default:
		return nil
	}
}

// Entry is a committed (name, country) pair.
type Entry struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Table is the ordered list of committed entries.
type Table []Entry

// Contains reports whether an entry with the exact same name and country is
// already present.
func (t Table) Contains(entry Entry) bool {
	for _, existing := range t {
		if existing.Name == entry.Name && existing.Country == entry.Country {
			return true
		}
	}
	return false
}

// With returns a new table holding t followed by entry. t is left untouched.
func (t Table) With(entry Entry) Table {
	out := make(Table, len(t), len(t)+1)
	copy(out, t)
	return append(out, entry)
}

// State is the full form state. Country == "" means no country is selected and
// Error == "" means no error is displayed.
type State struct {
	Name      string `json:"name"`
	Country   string `json:"country"`
	Error     string `json:"error,omitempty"`
	ErrorKind Kind   `json:"errorKind,omitempty"`

	Options         []string `json:"options"`
	LocationsLoaded bool     `json:"locationsLoaded"`
	Table           Table    `json:"table"`

	// NameRevision identifies the current name value. Validation results
	// issued for an older revision are dropped.
	NameRevision uint64 `json:"nameRevision"`
	Validating   bool   `json:"validating"`

	// Version increases on every reduce so observers can order snapshots.
	Version uint64 `json:"version"`
}

// CanAdd reports whether the Add action is enabled.
func (s State) CanAdd() bool {
	return s.Name != "" && s.Error == ""
}

// DefaultCountry is the first loaded option, or "" when none were loaded.
func (s State) DefaultCountry() string {
	if len(s.Options) == 0 {
		return ""
	}
	return s.Options[0]
}

// Err returns the sentinel error for the current error kind, or nil.
func (s State) Err() error {
	return s.ErrorKind.Err()
}

// Clone returns a deep copy so callers can hand snapshots to other goroutines.
func (s State) Clone() State {
	out := s
	if s.Options != nil {
		out.Options = append([]string(nil), s.Options...)
	}
	if s.Table != nil {
		out.Table = append(Table(nil), s.Table...)
	}
	return out
}
