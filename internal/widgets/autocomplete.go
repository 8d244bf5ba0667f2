package widgets

import (
	"strings"
	"sync"

	"searchalicious/internal/debounce"
	"searchalicious/internal/domain"
	"searchalicious/internal/eventbus"
)

// Autocomplete is a text input with a suggestion list. Value changes are
// published as AutocompleteInput, submissions as AutocompleteSubmit; the
// owner of InputName reacts to both.
type Autocomplete struct {
	searchName string
	inputName  string
	bus        eventbus.EventBus
	blur       *debounce.Debouncer

	mu          sync.RWMutex
	value       string
	suggestions []Suggestion
	selected    int
	visible     bool
	onChange    func()
}

// NewAutocomplete creates an autocomplete input. The blur debouncer delays hiding the
// suggestions so a selection made right before the blur still wins.
func NewAutocomplete(searchName, inputName string, bus eventbus.EventBus, blur *debounce.Debouncer) *Autocomplete {
	if searchName == "" {
		searchName = domain.DefaultSearchName
	}
	if blur == nil {
		blur = debounce.New(0)
	}
	return &Autocomplete{
		searchName: searchName,
		inputName:  inputName,
		bus:        bus,
		blur:       blur,
		selected:   -1,
	}
}

// InputName returns the name routing the events of this input
func (a *Autocomplete) InputName() string {
	return a.inputName
}

// SetOnChange registers a callback run whenever suggestions change
func (a *Autocomplete) SetOnChange(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onChange = fn
}

// Value returns the current input value
func (a *Autocomplete) Value() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.value
}

// SetValue changes the input value and publishes it
func (a *Autocomplete) SetValue(value string) {
	a.mu.Lock()
	a.value = value
	a.selected = -1
	a.visible = true
	a.mu.Unlock()

	a.bus.Publish(domain.AutocompleteInputEvent{
		Routed:    domain.Routed{Name: a.searchName},
		InputName: a.inputName,
		Value:     value,
	})
}

// SetSuggestions replaces the suggestion list
func (a *Autocomplete) SetSuggestions(suggestions []Suggestion) {
	a.mu.Lock()
	a.suggestions = suggestions
	if a.selected >= len(suggestions) {
		a.selected = -1
	}
	onChange := a.onChange
	a.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}

// Suggestions returns the current suggestion list
func (a *Autocomplete) Suggestions() []Suggestion {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]Suggestion(nil), a.suggestions...)
}

// Selected returns the index of the highlighted suggestion, -1 for none
func (a *Autocomplete) Selected() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.selected
}

// Visible reports whether the suggestion list is shown
func (a *Autocomplete) Visible() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.visible && len(a.suggestions) > 0
}

// MoveSelection moves the highlight by delta, wrapping around
func (a *Autocomplete) MoveSelection(delta int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := len(a.suggestions)
	if n == 0 {
		a.selected = -1
		return
	}
	// -1 sits between the last and the first entry
	a.selected = ((a.selected+1+delta)%(n+1)+n+1)%(n+1) - 1
}

// Focus shows the suggestions again, cancelling a pending blur
func (a *Autocomplete) Focus() {
	a.blur.Cancel()
	a.mu.Lock()
	a.visible = true
	a.mu.Unlock()
}

// Blur hides the suggestions after the debounce wait
func (a *Autocomplete) Blur() {
	a.blur.Debounce(func() {
		a.mu.Lock()
		a.visible = false
		a.selected = -1
		onChange := a.onChange
		a.mu.Unlock()
		if onChange != nil {
			onChange()
		}
	})
}

// Submit publishes the highlighted suggestion, or the raw value when none is
// highlighted, then clears the input. Blank values are not submitted.
func (a *Autocomplete) Submit() bool {
	a.blur.Cancel()

	a.mu.Lock()
	value, label := strings.TrimSpace(a.value), ""
	if a.selected >= 0 && a.selected < len(a.suggestions) {
		s := a.suggestions[a.selected]
		value, label = s.Value, s.Label
	}
	if value == "" {
		a.mu.Unlock()
		return false
	}
	a.value = ""
	a.suggestions = nil
	a.selected = -1
	a.visible = false
	a.mu.Unlock()

	a.bus.Publish(domain.AutocompleteSubmitEvent{
		Routed:    domain.Routed{Name: a.searchName},
		InputName: a.inputName,
		Value:     value,
		Label:     label,
	})
	return true
}

// Reset clears the input without publishing anything
func (a *Autocomplete) Reset() {
	a.blur.Cancel()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.value = ""
	a.suggestions = nil
	a.selected = -1
	a.visible = false
}
