package logger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSettings serves whole sections by path.
type stubSettings map[string]Options

func (s stubSettings) Unmarshal(path string, out any) error {
	opts, ok := out.(*Options)
	if !ok {
		return fmt.Errorf("unexpected target %T", out)
	}
	if section, found := s[path]; found {
		*opts = section
	}
	return nil
}

type failingSettings struct{}

func (failingSettings) Unmarshal(string, any) error { return assert.AnError }

func TestOptionsFrom_DefaultsWhenSectionMissing(t *testing.T) {
	opts, err := OptionsFrom(stubSettings{})

	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)
}

func TestOptionsFrom_PartialSectionKeepsDefaults(t *testing.T) {
	opts, err := OptionsFrom(stubSettings{SectionName: Options{Level: " WARN "}})

	require.NoError(t, err)
	assert.Equal(t, Options{Level: "warn", Format: FormatJSON, Output: OutputStdout}, opts)
}

func TestOptionsFrom_Validation(t *testing.T) {
	tests := []struct {
		name    string
		section Options
		wantErr bool
	}{
		{name: "all set", section: Options{Level: "trace", Format: "console", Output: "stderr"}},
		{name: "disabled level", section: Options{Level: "disabled"}},
		{name: "unknown level", section: Options{Level: "verbose"}, wantErr: true},
		{name: "unknown format", section: Options{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OptionsFrom(stubSettings{SectionName: tt.section})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOptionsFrom_SettingsError(t *testing.T) {
	_, err := OptionsFrom(failingSettings{})

	assert.ErrorIs(t, err, assert.AnError)
}
