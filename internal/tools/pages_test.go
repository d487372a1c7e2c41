package tools_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/file-lab/internal/pdf"
	"github.com/JaimeStill/file-lab/internal/tools"
)

func TestParsePages(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []int
	}{
		{"single", "1", []int{0}},
		{"range", "2-4", []int{1, 2, 3}},
		{"open start", "-3", []int{0, 1, 2}},
		{"open end", "4-", []int{3, 4}},
		{"order kept", "3,1,2", []int{2, 0, 1}},
		{"duplicates kept", "1,1,2", []int{0, 0, 1}},
		{"mixed", "5, 1-2 ,3", []int{4, 0, 1, 2}},
		{"trailing comma", "2,", []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tools.ParsePages(tt.expr, 5)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePages_Errors(t *testing.T) {
	tests := []struct {
		name string
		expr string
		err  error
	}{
		{"empty", "", tools.ErrInvalidInput},
		{"only commas", ",,", tools.ErrInvalidInput},
		{"letters", "a", tools.ErrInvalidInput},
		{"bad range", "1-x", tools.ErrInvalidInput},
		{"zero", "0", pdf.ErrIndexOutOfRange},
		{"past end", "6", pdf.ErrIndexOutOfRange},
		{"range past end", "4-9", pdf.ErrIndexOutOfRange},
		{"reversed", "4-2", tools.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tools.ParsePages(tt.expr, 5)
			require.ErrorIs(t, err, tt.err)
		})
	}
}
