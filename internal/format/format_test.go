package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{in: "text", want: Text},
		{in: " JSON ", want: JSON},
		{in: "Text", want: Text},
		{in: "yaml", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			require.Error(t, err, tt.in)
			require.False(t, IsValid(tt.in))
			continue
		}
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got)
		require.True(t, IsValid(tt.in))
	}
}

func TestHelpText(t *testing.T) {
	t.Parallel()

	help := HelpText()
	for _, f := range SupportedFormats {
		require.Contains(t, help, f)
	}
}
