package form

// Action is a state transition understood by Reduce.
type Action interface {
	isAction()
}

// LocationsLoaded delivers the country options fetched at startup.
type LocationsLoaded struct {
	Options []string
}

// LocationsFailed records a failed options fetch. The form fields are not
// changed; the failure is only logged by the caller.
type LocationsFailed struct {
	Err error
}

// NameChanged is a keystroke in the name field.
type NameChanged struct {
	Value string
}

// ValidationStarted marks the moment a debounced validation is issued.
type ValidationStarted struct {
	Revision uint64
}

// ValidationResolved carries the validator answer for the given revision.
type ValidationResolved struct {
	Revision uint64
	Valid    bool
}

// ValidationFailed carries a validator failure for the given revision.
type ValidationFailed struct {
	Revision uint64
	Err      error
}

// CountryChanged is a selection change.
type CountryChanged struct {
	Value string
}

// AddRequested commits the current (name, country) pair.
type AddRequested struct{}

// ClearRequested resets the transient fields.
type ClearRequested struct{}

func (LocationsLoaded) isAction()    {}
func (LocationsFailed) isAction()    {}
func (NameChanged) isAction()        {}
func (ValidationStarted) isAction()  {}
func (ValidationResolved) isAction() {}
func (ValidationFailed) isAction()   {}
func (CountryChanged) isAction()     {}
func (AddRequested) isAction()       {}
func (ClearRequested) isAction()     {}

// Reduce applies action to state and returns the next state.
func Reduce(state State, action Action) State {
	next := state.Clone()
	next.Version = state.Version + 1

	switch a := action.(type) {
	case LocationsLoaded:
		next.Options = append([]string(nil), a.Options...)
		next.LocationsLoaded = true
		next.Country = next.DefaultCountry()

	case LocationsFailed:
		// nothing user visible

	case NameChanged:
		next.Name = a.Value
		next.NameRevision++
		next.Validating = false

	case ValidationStarted:
		if a.Revision == next.NameRevision {
			next.Validating = true
		}

	case ValidationResolved:
		if a.Revision != next.NameRevision {
			return next
		}
		next.Validating = false
		if a.Valid {
			next = withoutError(next)
		} else {
			next = withError(next, KindNameTaken, MessageNameTaken)
		}

	case ValidationFailed:
		if a.Revision != next.NameRevision {
			return next
		}
		next.Validating = false
		next = withError(next, KindValidationFailure, MessageValidationError)

	case CountryChanged:
		next.Country = a.Value

	case AddRequested:
		if !next.CanAdd() {
			return next
		}
		entry := Entry{Name: next.Name, Country: next.Country}
		if next.Table.Contains(entry) {
			return withError(next, KindDuplicateEntry, MessageDuplicateEntry)
		}
		next.Table = next.Table.With(entry)
		next = reset(next)

	case ClearRequested:
		next = reset(next)
	}

	return next
}

// Apply folds actions over state in order.
func Apply(state State, actions ...Action) State {
	for _, action := range actions {
		state = Reduce(state, action)
	}
	return state
}

func reset(s State) State {
	s.Name = ""
	s.Country = s.DefaultCountry()
	s.NameRevision++
	s.Validating = false
	return withoutError(s)
}

func withError(s State, kind Kind, message string) State {
	s.Error = message
	s.ErrorKind = kind
	return s
}

func withoutError(s State) State {
	s.Error = ""
	s.ErrorKind = KindNone
	return s
}
