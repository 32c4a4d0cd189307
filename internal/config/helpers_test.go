package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-apprun/internal/logger"
)

// ── helpers ───────────────────────────────────────────────────────────────────

// sampleSettings mirrors a small appsettings file.
type sampleSettings struct {
	Setting1 string `json:"Setting1"`
	Setting2 int    `json:"Setting2"`
	Setting3 int    `json:"Setting3"`
}

func writeSettingsFile(t *testing.T, path string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// newTree creates <tmp>/Parent/Current and returns both directories.
func newTree(t *testing.T) (parent, current string) {
	t.Helper()
	parent = filepath.Join(t.TempDir(), "Parent")
	current = filepath.Join(parent, "Current")
	require.NoError(t, os.MkdirAll(current, 0o755))
	return parent, current
}

func newTestRegistry(t *testing.T, dir string, environ map[string]string) *SourceRegistry {
	t.Helper()
	if environ == nil {
		environ = map[string]string{}
	}
	reg, err := NewSourceRegistry(WithWorkingDirectory(dir), WithEnvironment(environ))
	require.NoError(t, err)
	return reg
}

// loadTree builds reg into a fresh KoanfStore.
func loadTree(t *testing.T, reg *SourceRegistry) *KoanfStore {
	t.Helper()
	store := NewKoanfStore()
	_, err := Load(reg, store)
	require.NoError(t, err)
	return store
}

// newBufferLogger returns a console logger writing into the returned buffer.
func newBufferLogger() (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logger.NewBootstrap(&buf, "config-test"), &buf
}

// logLines splits console log output into non-empty lines.
func logLines(buf *bytes.Buffer) []string {
	out := strings.TrimSpace(buf.String())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
