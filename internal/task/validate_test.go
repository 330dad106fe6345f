package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "pads month and day", raw: "2024-1-5", want: "2024-01-05"},
		{name: "pads year to four digits", raw: "7-2-3", want: "0007-02-03"},
		{name: "two digit year", raw: "24-12-31", want: "0024-12-31"},
		{name: "three digit year", raw: "999-1-1", want: "0999-01-01"},
		{name: "already canonical", raw: "2024-01-05", want: "2024-01-05"},
		{name: "leap day", raw: "2024-2-29", want: "2024-02-29"},
		{name: "surrounding whitespace", raw: "  2024-3-1 ", want: "2024-03-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := ParseDate(got)
			require.NoError(t, err)
			assert.Equal(t, got, again, "canonical form should be a fixed point")
		})
	}
}

func TestParseDateRejects(t *testing.T) {
	for _, raw := range []string{
		"", "2024", "2024-01", "2024-01-05-01", "2024-02-30", "2023-02-29",
		"2024-13-01", "2024-0-10", "2024-01-00", "2024-1-x", "2024/01/05",
		"10000-01-01", "2024--5",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseDate(raw)
			assert.ErrorIs(t, err, ErrInvalidDate)
		})
	}
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("9:5")
	require.NoError(t, err)
	assert.Equal(t, "09:05", got)

	got, err = ParseTime("23:59")
	require.NoError(t, err)
	assert.Equal(t, "23:59", got)

	got, err = ParseTime("0:0")
	require.NoError(t, err)
	assert.Equal(t, "00:00", got)

	for _, raw := range []string{"24:00", "12:60", "-1:10", "12", "12:30:00", "ab:cd", ""} {
		_, err := ParseTime(raw)
		assert.ErrorIs(t, err, ErrInvalidTime, raw)
	}
}

func TestParsePriority(t *testing.T) {
	for raw, want := range map[string]Marker{
		"C": Critical, "c": Critical, "h": High, " N ": Normal, "L": Low,
	} {
		got, err := ParsePriority(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	for _, raw := range []string{"", "X", "CH", "critical"} {
		_, err := ParsePriority(raw)
		assert.ErrorIs(t, err, ErrInvalidPriority, raw)
	}
}

func TestParseField(t *testing.T) {
	f, err := ParseField("task")
	require.NoError(t, err)
	assert.Equal(t, FieldBody, f)

	_, err = ParseField("Priority")
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestNewRecord(t *testing.T) {
	r, err := NewRecord("2024-1-5", "9:5", Marker{Letter: "h"}, []string{"  buy milk ", "call mum"})
	require.NoError(t, err)
	assert.Equal(t, Record{Date: "2024-01-05", Time: "09:05", Priority: High, Body: []string{"buy milk", "call mum"}}, r)

	_, err = NewRecord("2024-01-05", "09:05", Normal, nil)
	assert.ErrorIs(t, err, ErrEmptyBody)

	_, err = NewRecord("2024-01-05", "09:05", Normal, []string{"ok", "   "})
	assert.ErrorIs(t, err, ErrEmptyBody)

	_, err = NewRecord("2024-01-05", "09:05", Marker{Letter: "Z"}, []string{"x"})
	assert.ErrorIs(t, err, ErrInvalidPriority)
}
