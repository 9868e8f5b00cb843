package form

import (
	"testing"

	"taxform/models"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// newTestAutocomplete returns an input over the full country list and the
// slice its updates are recorded into.
func newTestAutocomplete() (*Autocomplete, *[]string) {
	var emitted []string
	a := NewAutocomplete(models.Countries(), func(v string) {
		emitted = append(emitted, v)
	})
	return a, &emitted
}

func TestAutocomplete_TypeEmitsRawText(t *testing.T) {
	a, emitted := newTestAutocomplete()

	a.Type("Co")

	require.Equal(t, []string{"Co"}, *emitted)
	require.Equal(t, "Co", a.Value())
}

func TestAutocomplete_TypeShowsMatchingSuggestions(t *testing.T) {
	a, _ := newTestAutocomplete()

	a.Type("Co")

	require.True(t, a.IsOpen())
	require.Contains(t, a.Suggestions(), "Colombia")
	require.Contains(t, a.Suggestions(), "Morocco", "matching is by substring, case-insensitive")
	require.NotContains(t, a.Suggestions(), "Canada")
	require.Equal(t, NoActive, a.Active())
}

func TestAutocomplete_EmptyQueryHasNoSuggestions(t *testing.T) {
	a, emitted := newTestAutocomplete()

	a.Type("")

	require.Empty(t, a.Suggestions())
	require.False(t, a.IsOpen())
	require.Equal(t, []string{""}, *emitted)
}

func TestAutocomplete_NoMatchRendersNothing(t *testing.T) {
	a, _ := newTestAutocomplete()

	a.Type("zzz")
	a.Down()

	require.Empty(t, a.Suggestions())
	require.False(t, a.IsOpen())
	require.Equal(t, NoActive, a.Active())
	require.False(t, a.Enter())
}

func TestAutocomplete_DownTwiceActivatesSecond(t *testing.T) {
	a, emitted := newTestAutocomplete()
	a.Type("United")
	require.Equal(t, []string{"United Arab Emirates", "United Kingdom", "United States"}, a.Suggestions())

	a.Down()
	require.Equal(t, 0, a.Active(), "first down activates item 0")

	a.Down()
	require.Equal(t, 1, a.Active(), "second down activates item 1")

	require.Equal(t, []string{"United", "United Arab Emirates", "United Kingdom"}, *emitted)
	require.Equal(t, "United Kingdom", a.Value())
	require.True(t, a.IsOpen(), "navigation keeps the list open")
}

func TestAutocomplete_NavigationKeepsSuggestions(t *testing.T) {
	a, _ := newTestAutocomplete()
	a.Type("United")

	a.Down()
	a.SetValue("United Arab Emirates")

	require.Len(t, a.Suggestions(), 3, "values pushed down by the owner do not refilter")
}

func TestAutocomplete_DownThenUpReturnsToFirst(t *testing.T) {
	a, _ := newTestAutocomplete()
	a.Type("United")

	a.Down()
	a.Up()

	require.Equal(t, 0, a.Active())
}

func TestAutocomplete_UpFromSecondEmitsFirst(t *testing.T) {
	a, emitted := newTestAutocomplete()
	a.Type("United")
	a.Down()
	a.Down()

	a.Up()

	require.Equal(t, 0, a.Active())
	require.Equal(t, "United Arab Emirates", (*emitted)[len(*emitted)-1])
	require.Equal(t, "United Arab Emirates", a.Value(), "the input shows the highlighted suggestion")
}

func TestAutocomplete_UpWithoutActiveIsNoop(t *testing.T) {
	a, emitted := newTestAutocomplete()
	a.Type("United")

	a.Up()

	require.Equal(t, NoActive, a.Active())
	require.Len(t, *emitted, 1)
}

func TestAutocomplete_DownClampsAtLast(t *testing.T) {
	a, _ := newTestAutocomplete()
	a.Type("United")

	for i := 0; i < 10; i++ {
		a.Down()
	}

	require.Equal(t, 2, a.Active())
	require.Equal(t, "United States", a.Value())
}

func TestAutocomplete_EnterPicksActive(t *testing.T) {
	a, emitted := newTestAutocomplete()
	a.Type("United")
	a.Down()
	a.Down()
	a.Down()

	require.True(t, a.Enter())

	require.Equal(t, "United States", (*emitted)[len(*emitted)-1])
	require.False(t, a.IsOpen())
}

func TestAutocomplete_EnterDefaultsToFirst(t *testing.T) {
	a, emitted := newTestAutocomplete()
	a.Type("United")

	require.True(t, a.Enter())

	require.Equal(t, []string{"United", "United Arab Emirates"}, *emitted)
	require.Equal(t, "United Arab Emirates", a.Value())
	require.False(t, a.IsOpen())
}

func TestAutocomplete_EnterOnClosedListIsNotConsumed(t *testing.T) {
	a, _ := newTestAutocomplete()
	a.Type("Canada")
	require.True(t, a.Enter())

	require.False(t, a.Enter(), "a second enter belongs to the form")
}

func TestAutocomplete_ClickEmitsSuggestion(t *testing.T) {
	a, emitted := newTestAutocomplete()
	a.Type("New")
	require.Equal(t, "New Zealand", a.Suggestions()[0])

	require.True(t, a.Click(0))

	require.Equal(t, []string{"New", "New Zealand"}, *emitted)
	require.False(t, a.IsOpen())
}

func TestAutocomplete_ClickOutOfRange(t *testing.T) {
	a, emitted := newTestAutocomplete()
	a.Type("New")

	require.False(t, a.Click(5))
	require.False(t, a.Click(-1))
	require.Len(t, *emitted, 1)
	require.True(t, a.IsOpen())
}

func TestAutocomplete_TypeResetsActive(t *testing.T) {
	a, _ := newTestAutocomplete()
	a.Type("United")
	a.Down()
	a.Down()

	a.Type("United K")

	require.Equal(t, NoActive, a.Active())
	require.Equal(t, []string{"United Kingdom"}, a.Suggestions())
}

func TestAutocomplete_RestoreDropsStaleActive(t *testing.T) {
	a, _ := newTestAutocomplete()

	a.Restore(AutocompleteState{Value: "Canada", Query: "Canada", Active: 7, Open: true})

	require.Equal(t, NoActive, a.Active())
	require.Equal(t, []string{"Canada"}, a.Suggestions())
}

func TestAutocomplete_StateRoundTrip(t *testing.T) {
	a, _ := newTestAutocomplete()
	a.Type("United")
	a.Down()

	b, emitted := newTestAutocomplete()
	b.Restore(a.State())

	require.Equal(t, a.Suggestions(), b.Suggestions())
	require.Equal(t, a.Active(), b.Active())
	require.Equal(t, a.Value(), b.Value())
	require.Empty(t, *emitted, "restore does not emit")
}

// TestAutocomplete_ActiveIndexInvariant drives random interaction sequences
// and checks the active index never leaves [-1, len-1].
func TestAutocomplete_ActiveIndexInvariant(t *testing.T) {
	queries := []string{"", "a", "Un", "United", "New", "Co", "zz", "in"}

	rapid.Check(t, func(t *rapid.T) {
		a := NewAutocomplete(models.Countries(), nil)
		steps := rapid.IntRange(1, 40).Draw(t, "steps")

		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 5).Draw(t, "op") {
			case 0:
				a.Type(rapid.SampledFrom(queries).Draw(t, "query"))
				if a.Active() != NoActive {
					t.Fatalf("typing must reset active, got %d", a.Active())
				}
			case 1:
				a.Down()
			case 2:
				a.Up()
			case 3:
				a.Enter()
			case 4:
				a.Click(rapid.IntRange(-1, 5).Draw(t, "index"))
			case 5:
				a.Close()
			}

			if a.Active() < NoActive || a.Active() >= len(a.Suggestions()) && a.Active() != NoActive {
				t.Fatalf("active %d out of range for %d suggestions", a.Active(), len(a.Suggestions()))
			}
		}
	})
}
