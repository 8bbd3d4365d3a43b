package address

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/FocuswithJustin/rsb-cli/core/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		token string
		want  Address
	}{
		{token: "", want: Book()},
		{token: "  ", want: Book()},
		{token: "1", want: Chapter(0)},
		{token: "50", want: Chapter(49)},
		{token: "3-5", want: Chapters(2, 4)},
		{token: "4-4", want: Chapters(3, 3)},
		{token: "1:1", want: Verse(0, 0)},
		{token: "3:16", want: Verse(2, 15)},
		{token: "3:16-18", want: Verses(2, 15, 17)},
		{token: "150:1-6", want: Verses(149, 0, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := Parse(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_InvalidInput(t *testing.T) {
	tests := []struct {
		token     string
		wantToken string
	}{
		{token: "0", wantToken: "0"},
		{token: "abc", wantToken: "abc"},
		{token: "-3", wantToken: ""},
		{token: "3-", wantToken: ""},
		{token: "0-2", wantToken: "0"},
		{token: "x:1", wantToken: "x"},
		{token: "1:0", wantToken: "0"},
		{token: "1:2:3", wantToken: "2:3"},
		{token: "1-2:3", wantToken: "1-2"},
		{token: "+5", wantToken: "+5"},
		{token: "5-3", wantToken: "5-3"},
		{token: "99999999999999999999999", wantToken: "99999999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			_, err := Parse(tt.token)
			require.Error(t, err)

			var inputErr *apperrors.InvalidInputError
			require.True(t, errors.As(err, &inputErr), "got %T: %v", err, err)
			assert.Equal(t, tt.wantToken, inputErr.Token)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestParse_InvalidVerseRange(t *testing.T) {
	tests := []struct {
		token     string
		wantToken string
	}{
		{token: "1:5-3", wantToken: "5-3"},
		{token: "1:5-5", wantToken: "5-5"},
		{token: "1:0-2", wantToken: "0-2"},
		{token: "1:2-x", wantToken: "2-x"},
		{token: "1:-", wantToken: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			_, err := Parse(tt.token)

			var rangeErr *apperrors.InvalidVerseRangeError
			require.True(t, errors.As(err, &rangeErr), "got %T: %v", err, err)
			assert.Equal(t, tt.wantToken, rangeErr.Token)
		})
	}
}

func TestParseVerses_Direct(t *testing.T) {
	for _, s := range []string{"5-3", "5-5"} {
		_, err := parseVerses(0, s)
		var rangeErr *apperrors.InvalidVerseRangeError
		assert.True(t, errors.As(err, &rangeErr), s)
	}

	_, err := parseVerses(0, "0")
	var inputErr *apperrors.InvalidInputError
	assert.True(t, errors.As(err, &inputErr))
}

func TestAddress_String(t *testing.T) {
	tests := []struct {
		addr Address
		want string
	}{
		{addr: Book(), want: ""},
		{addr: Chapter(2), want: "3"},
		{addr: Chapters(2, 4), want: "3-5"},
		{addr: Verse(0, 0), want: "1:1"},
		{addr: Verses(2, 15, 17), want: "3:16-18"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.addr.String())

			back, err := Parse(tt.addr.String())
			require.NoError(t, err)
			assert.Equal(t, tt.addr, back)
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "whole-book", WholeBook.String())
	assert.Equal(t, "verse-range", VerseRange.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
