package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"startpage/internal/suggest"
)

func reduceAll(s State, events ...Event) State {
	for _, e := range events {
		s = Reduce(s, e)
	}
	return s
}

func focused(history ...string) State {
	return Reduce(New(), FocusGained{History: history})
}

func TestFocusShowsHistoryWhenEmptyQuery(t *testing.T) {
	s := focused("go", "rust")
	assert.True(t, s.Focused)
	assert.True(t, s.ShowHistory)
	assert.False(t, s.ShowSuggestions)
	assert.Equal(t, -1, s.Highlight)

	s = focused()
	assert.False(t, s.ShowHistory, "no dropdown without entries")
}

func TestTypingHidesHistoryAndShowsSuggestions(t *testing.T) {
	s := focused("go")
	s = Reduce(s, TextChanged{Text: "ca"})
	assert.False(t, s.ShowHistory)
	assert.False(t, s.ShowSuggestions, "nothing to show until a response arrives")

	s = Reduce(s, SuggestionsLoaded{Items: []string{"cats", "category", "catalog"}})
	assert.True(t, s.ShowSuggestions)
	assert.Equal(t, []string{"cats", "category", "catalog"}, s.Visible())
	assert.True(t, s.Valid())
}

func TestNewTextHidesOlderSuggestions(t *testing.T) {
	s := reduceAll(focused(),
		TextChanged{Text: "ca"},
		SuggestionsLoaded{Items: []string{"cabage"}},
		HighlightMoved{Delta: 1},
		TextChanged{Text: "cat"},
	)
	assert.False(t, s.ShowSuggestions)
	assert.Empty(t, s.Visible())
	assert.Equal(t, -1, s.Highlight)
	_, ok := s.Selected()
	assert.False(t, ok, "nothing from the older query can be submitted")
	assert.Equal(t, []string{"cabage"}, s.Suggestions)

	s = Reduce(s, SuggestionsLoaded{Items: []string{"cats"}})
	assert.Equal(t, []string{"cats"}, s.Visible())
}

func TestClearingTextDropsSuggestions(t *testing.T) {
	s := reduceAll(focused("go"),
		TextChanged{Text: "c"},
		SuggestionsLoaded{Items: []string{"cats"}},
		TextChanged{Text: "", History: []string{"go"}},
	)
	assert.Nil(t, s.Suggestions)
	assert.False(t, s.ShowSuggestions)
	assert.True(t, s.ShowHistory)
}

func TestSuggestionsTruncatedToEight(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	s := reduceAll(focused(), TextChanged{Text: "x"}, SuggestionsLoaded{Items: items})
	assert.Len(t, s.Suggestions, suggest.MaxItems)
	assert.Len(t, items, 10, "input slice untouched")
}

func TestEmptySuggestionsHideDropdown(t *testing.T) {
	s := reduceAll(focused(),
		TextChanged{Text: "x"},
		SuggestionsLoaded{Items: []string{"xa"}},
		SuggestionsLoaded{Items: nil},
	)
	assert.False(t, s.ShowSuggestions)
	assert.Empty(t, s.Suggestions)
}

func TestSuggestionsIgnoredForEmptyQuery(t *testing.T) {
	s := Reduce(focused("go"), SuggestionsLoaded{Items: []string{"late"}})
	assert.Empty(t, s.Suggestions)
	assert.True(t, s.ShowHistory)
}

func TestHighlightClamped(t *testing.T) {
	s := reduceAll(focused(), TextChanged{Text: "c"}, SuggestionsLoaded{Items: []string{"a", "b", "c"}})

	s = reduceAll(s, HighlightMoved{Delta: 1}, HighlightMoved{Delta: 1}, HighlightMoved{Delta: 1}, HighlightMoved{Delta: 1})
	assert.Equal(t, 2, s.Highlight)
	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "c", sel)

	for i := 0; i < 5; i++ {
		s = Reduce(s, HighlightMoved{Delta: -1})
	}
	assert.Equal(t, -1, s.Highlight)
	_, ok = s.Selected()
	assert.False(t, ok)
}

func TestHighlightWithoutDropdown(t *testing.T) {
	s := Reduce(New(), HighlightMoved{Delta: 1})
	assert.Equal(t, -1, s.Highlight)
}

func TestHighlightNavigatesHistory(t *testing.T) {
	s := Reduce(focused("go", "rust"), HighlightMoved{Delta: 1})
	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "go", sel)
}

func TestEscapeClosesDropdownThenBlurs(t *testing.T) {
	s := reduceAll(focused(), TextChanged{Text: "c"}, SuggestionsLoaded{Items: []string{"a", "b"}}, HighlightMoved{Delta: 1})

	s = Reduce(s, Dismissed{})
	assert.False(t, s.ShowSuggestions)
	assert.Equal(t, -1, s.Highlight)
	assert.True(t, s.Focused, "first escape only closes the dropdown")
	assert.Equal(t, "c", s.Query)

	s = Reduce(s, Dismissed{})
	assert.False(t, s.Focused)

	s = Reduce(s, Dismissed{})
	assert.Equal(t, New().Highlight, s.Highlight, "escape on an unfocused page is ignored")
	assert.False(t, s.Focused)
}

func TestSubmitHidesEverything(t *testing.T) {
	s := reduceAll(focused(), TextChanged{Text: "c"}, SuggestionsLoaded{Items: []string{"a"}}, HighlightMoved{Delta: 1}, Submitted{})
	assert.False(t, s.DropdownOpen())
	assert.False(t, s.ShowEngineMenu)
	assert.False(t, s.Focused)
	assert.Equal(t, -1, s.Highlight)
	assert.Equal(t, "c", s.Query)
}

func TestOutsideClickClosesAndBlurs(t *testing.T) {
	s := Reduce(focused("go"), OutsideClicked{})
	assert.False(t, s.ShowHistory)
	assert.False(t, s.Focused)

	s = reduceAll(focused(), EngineMenuToggled{Current: 2}, OutsideClicked{})
	assert.False(t, s.ShowEngineMenu)
}

func TestEngineMenuNeverAltersQuery(t *testing.T) {
	s := reduceAll(focused(), TextChanged{Text: "rust book"}, SuggestionsLoaded{Items: []string{"rust book pdf"}})

	s = Reduce(s, EngineMenuToggled{Current: 3})
	assert.True(t, s.ShowEngineMenu)
	assert.Equal(t, 3, s.EngineCursor)
	assert.False(t, s.DropdownOpen())

	s = reduceAll(s, EngineCursorMoved{Delta: 10, Count: 7}, EngineChosen{})
	assert.Equal(t, 6, s.EngineCursor)
	assert.False(t, s.ShowEngineMenu)
	assert.Equal(t, "rust book", s.Query)
}

func TestEngineCursorIgnoredWhenMenuClosed(t *testing.T) {
	s := Reduce(New(), EngineCursorMoved{Delta: 1, Count: 7})
	assert.Equal(t, 0, s.EngineCursor)
}

func TestEscapeClosesEngineMenuFirst(t *testing.T) {
	s := reduceAll(focused(), EngineMenuToggled{}, Dismissed{})
	assert.False(t, s.ShowEngineMenu)
	assert.True(t, s.Focused)
}

func TestHistoryChangedClampsHighlight(t *testing.T) {
	s := reduceAll(focused("a", "b", "c"), HighlightMoved{Delta: 3})
	require.Equal(t, 2, s.Highlight)

	s = Reduce(s, HistoryChanged{History: []string{"a", "b"}})
	assert.Equal(t, 1, s.Highlight)

	s = Reduce(s, HistoryChanged{History: nil})
	assert.False(t, s.ShowHistory)
	assert.True(t, s.Valid())
}

func TestAtMostOneDropdownVisible(t *testing.T) {
	events := []Event{
		FocusGained{History: []string{"go", "rust"}},
		TextChanged{Text: "g", History: []string{"go"}},
		SuggestionsLoaded{Items: []string{"golang", "gopher"}},
		HighlightMoved{Delta: 1},
		FocusGained{History: []string{"go"}},
		TextChanged{Text: "", History: []string{"go", "rust"}},
		HighlightMoved{Delta: 5},
		SuggestionsLoaded{Items: []string{"stale"}},
		EngineMenuToggled{},
		EngineCursorMoved{Delta: -3, Count: 7},
		Dismissed{},
		TextChanged{Text: "r"},
		SuggestionsLoaded{Items: []string{"rust"}},
		HistoryChanged{History: []string{"rust"}},
		Dismissed{},
		FocusGained{History: []string{"rust"}},
		OutsideClicked{},
		Submitted{},
	}

	s := New()
	for i, e := range events {
		s = Reduce(s, e)
		assert.True(t, s.Valid(), "step %d (%T) broke the invariant: %+v", i, e, s)
	}
}
