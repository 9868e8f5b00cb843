package form

import "taxform/models"

// NoActive is the active index when no suggestion is highlighted.
const NoActive = -1

// Autocomplete is the interaction state of a text input with a suggestion
// dropdown. The owner controls the displayed value through SetValue and
// learns about every change through the update callback.
//
// Invariants: at most one suggestion is active, and the active index is
// reset to NoActive whenever the suggestions are recomputed.
type Autocomplete struct {
	items    []string
	onUpdate func(string)

	value       string   // text currently shown in the input
	query       string   // text the suggestions were filtered by
	suggestions []string // derived from items and query
	active      int
	open        bool
}

// AutocompleteState is the serializable part of an Autocomplete.
// Suggestions are not stored; they are derived from Query on restore.
type AutocompleteState struct {
	Value  string `msgpack:"value"`
	Query  string `msgpack:"query"`
	Active int    `msgpack:"active"`
	Open   bool   `msgpack:"open"`
}

// NewAutocomplete creates a closed input over items. onUpdate may be nil.
func NewAutocomplete(items []string, onUpdate func(string)) *Autocomplete {
	return &Autocomplete{
		items:    items,
		onUpdate: onUpdate,
		active:   NoActive,
	}
}

// OnUpdate replaces the update callback.
func (a *Autocomplete) OnUpdate(fn func(string)) {
	a.onUpdate = fn
}

// SetValue is how the owner passes the authoritative value down. It does not
// refilter the suggestions.
func (a *Autocomplete) SetValue(v string) {
	a.value = v
}

// Type handles user typing: refilter, clear the highlight, emit the raw text.
func (a *Autocomplete) Type(text string) {
	a.value = text
	a.query = text
	a.suggestions = models.FilterItems(a.items, text)
	a.active = NoActive
	a.open = len(a.suggestions) > 0
	a.emit(text)
}

// Down highlights the next suggestion, or the first when none is active.
// It stays on the last one at the bottom of the list.
func (a *Autocomplete) Down() {
	if len(a.suggestions) == 0 {
		return
	}
	a.open = true
	if a.active < len(a.suggestions)-1 {
		a.active++
	}
	a.value = a.suggestions[a.active]
	a.emit(a.value)
}

// Up highlights the previous suggestion. At the top it does nothing.
func (a *Autocomplete) Up() {
	if a.active <= 0 || len(a.suggestions) == 0 {
		return
	}
	a.active--
	a.value = a.suggestions[a.active]
	a.emit(a.value)
}

// Enter picks the active suggestion, defaulting to the first one, and closes
// the list. It reports whether a suggestion was picked.
func (a *Autocomplete) Enter() bool {
	if len(a.suggestions) == 0 || !a.open {
		return false
	}
	i := a.active
	if i == NoActive {
		i = 0
	}
	a.pick(a.suggestions[i])
	return true
}

// Click picks the suggestion at index i and closes the list.
func (a *Autocomplete) Click(i int) bool {
	if i < 0 || i >= len(a.suggestions) {
		return false
	}
	a.pick(a.suggestions[i])
	return true
}

// Close hides the list without changing the value.
func (a *Autocomplete) Close() {
	a.open = false
}

func (a *Autocomplete) pick(s string) {
	a.value = s
	a.open = false
	a.emit(s)
}

func (a *Autocomplete) emit(v string) {
	if a.onUpdate != nil {
		a.onUpdate(v)
	}
}

// Value returns the text shown in the input.
func (a *Autocomplete) Value() string { return a.value }

// Suggestions returns the current filtered list.
func (a *Autocomplete) Suggestions() []string { return a.suggestions }

// Active returns the highlighted index or NoActive.
func (a *Autocomplete) Active() int { return a.active }

// IsOpen reports whether the suggestion list is shown.
func (a *Autocomplete) IsOpen() bool { return a.open && len(a.suggestions) > 0 }

// State captures the input for a session snapshot.
func (a *Autocomplete) State() AutocompleteState {
	return AutocompleteState{
		Value:  a.value,
		Query:  a.query,
		Active: a.active,
		Open:   a.open,
	}
}

// Restore loads a snapshot without emitting updates. An out-of-range active
// index from a stale snapshot is dropped.
func (a *Autocomplete) Restore(st AutocompleteState) {
	a.value = st.Value
	a.query = st.Query
	a.suggestions = models.FilterItems(a.items, st.Query)
	a.open = st.Open
	a.active = st.Active
	if a.active < NoActive || a.active >= len(a.suggestions) {
		a.active = NoActive
	}
}
