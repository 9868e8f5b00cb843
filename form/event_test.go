package form

import (
	"testing"

	"taxform/models"

	"github.com/stretchr/testify/require"
)

func TestEvent_Apply(t *testing.T) {
	c := NewController(models.Countries())

	steps := []Event{
		{Type: EventInput, Field: models.FieldUsername, Value: "Archer"},
		{Type: EventInput, Field: models.FieldCountry, Value: "United"},
		{Type: EventKey, Key: string(KeyDown)},
		{Type: EventKey, Key: string(KeyDown)},
		{Type: EventKey, Key: string(KeyUp)},
		{Type: EventInput, Field: models.FieldTaxID, Value: "1234-WTF-12345"},
	}
	for _, e := range steps {
		require.NoError(t, e.Apply(c))
	}

	require.Equal(t, models.Submission{
		Username: "Archer",
		Country:  "United Arab Emirates",
		TaxID:    "1234-WTF-12345",
	}, c.Submission())
	require.Equal(t, 0, c.View().Active)
}

func TestEvent_ApplySelectAndClose(t *testing.T) {
	c := NewController(models.Countries())
	require.NoError(t, Event{Type: EventInput, Field: models.FieldCountry, Value: "New"}.Apply(c))

	require.NoError(t, Event{Type: EventSelect, Index: 1}.Apply(c))
	require.Equal(t, "Papua New Guinea", c.Country().Value)

	require.NoError(t, Event{Type: EventInput, Field: models.FieldCountry, Value: "Co"}.Apply(c))
	require.NoError(t, Event{Type: EventClose}.Apply(c))
	require.False(t, c.View().Open)
}

func TestEvent_ApplyRejectsBadInput(t *testing.T) {
	c := NewController(models.Countries())

	require.Error(t, Event{Type: EventInput, Field: "password"}.Apply(c))
	require.Error(t, Event{Type: EventKey, Key: "Tab"}.Apply(c))
	require.Error(t, Event{Type: EventSelect, Index: 3}.Apply(c))
	require.Error(t, Event{Type: EventSubmit}.Apply(c))
	require.Error(t, Event{Type: "hover"}.Apply(c))
}
