package errors

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisError_Error(t *testing.T) {
	e := New(CodeMissingColumn, "table %q has no column %q", "results-1-1", "voltage")
	assert.Equal(t, `MISSING_COLUMN: table "results-1-1" has no column "voltage"`, e.Error())
}

func TestAnalysisError_Unwrap(t *testing.T) {
	cause := fs.ErrNotExist
	e := MissingFile("/tmp/nope.db", cause)
	require.ErrorIs(t, e, fs.ErrNotExist)
}

func TestIsCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{
			name: "direct match",
			err:  UnsupportedFormat(".xlsx"),
			code: CodeUnsupportedFormat,
			want: true,
		},
		{
			name: "wrapped match",
			err:  fmt.Errorf("loading data: %w", MissingExperiment("rt_sweep")),
			code: CodeMissingExperiment,
			want: true,
		},
		{
			name: "code mismatch",
			err:  InvalidWindow("Kaiser"),
			code: CodeMissingColumn,
			want: false,
		},
		{
			name: "plain error",
			err:  fmt.Errorf("boom"),
			code: CodeMissingFile,
			want: false,
		},
		{
			name: "nested analysis errors",
			err:  Wrap(CodeMissingFile, MissingColumn("t", "c"), "cannot read"),
			code: CodeMissingColumn,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCode(tt.err, tt.code))
		})
	}
}
