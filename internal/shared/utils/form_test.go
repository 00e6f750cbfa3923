package utils

import (
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISODate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-01T10:30", time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-03-01T10:30:00+02:00", time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseISODate(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), tt.in)
	}

	_, err := ParseISODate("03/01/2024")
	assert.Error(t, err)
}

func TestOptionalDate(t *testing.T) {
	assert.Nil(t, OptionalDate(""))
	assert.Nil(t, OptionalDate("not a date"))

	d := OptionalDate("1920-01-02")
	require.NotNil(t, d)
	assert.Equal(t, 1920, d.Year())
}

func TestISO8601Rule(t *testing.T) {
	rule := ISO8601("Invalid date")

	assert.NoError(t, rule.Validate(""))
	assert.NoError(t, rule.Validate("2020-02-29"))
	assert.EqualError(t, rule.Validate("2020-13-01"), "Invalid date")
}

func TestParseObjectID(t *testing.T) {
	_, ok := ParseObjectID("not-an-id")
	assert.False(t, ok)

	id, ok := ParseObjectID("65a1b2c3d4e5f60718293a4b")
	assert.True(t, ok)
	assert.Equal(t, "65a1b2c3d4e5f60718293a4b", id.Hex())
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "Tom &amp; Jerry &lt;b&gt;", Escape("Tom & Jerry <b>"))
}

func TestFieldErrors(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		got, err := FieldErrors(nil, "name")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("ordered by declared fields", func(t *testing.T) {
		verrs := validation.Errors{
			"zeta":    errors.New("zeta is wrong"),
			"imprint": errors.New("Imprint must be specified"),
			"book":    errors.New("Book must be specified"),
		}

		got, err := FieldErrors(verrs, "book", "imprint")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "book", got[0].Field)
		assert.Equal(t, "imprint", got[1].Field)
		assert.Equal(t, "zeta", got[2].Field)
	})

	t.Run("internal error passes through", func(t *testing.T) {
		internal := validation.NewInternalError(errors.New("boom"))
		_, err := FieldErrors(internal, "name")
		assert.Error(t, err)
	})
}
