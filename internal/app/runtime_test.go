package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-apprun/internal/config"
	"github.com/MKhiriev/go-apprun/models"
)

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))
}

// newDeployment creates <tmp>/Parent/Current with a current-directory
// settings file whose log output goes to a file inside the tree.
func newDeployment(t *testing.T, logging map[string]any) (current, logPath string) {
	t.Helper()
	parent := filepath.Join(t.TempDir(), "Parent")
	current = filepath.Join(parent, "Current")
	require.NoError(t, os.MkdirAll(current, 0o755))

	logPath = filepath.Join(parent, "app.log")
	logging["Output"] = logPath
	writeJSON(t, filepath.Join(current, "appsettings.json"), map[string]any{
		"Setting1": "CurrentProd",
		"Logging":  logging,
	})
	writeJSON(t, filepath.Join(parent, "appsettings.json"), map[string]any{
		"Setting1": "ParentProd",
	})

	return current, logPath
}

func readLogLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestNewRuntime_InvalidDirectory(t *testing.T) {
	_, err := NewRuntime("Billing.Service", models.RuntimeInfo{},
		config.WithWorkingDirectory(filepath.Join(t.TempDir(), "nope")))

	assert.ErrorIs(t, err, config.ErrInvalidWorkingDirectory)
}

func TestRuntime_LoggerBeforeSetup(t *testing.T) {
	rt, err := NewRuntime("Billing.Service", models.RuntimeInfo{},
		config.WithWorkingDirectory(t.TempDir()), config.WithEnvironment(map[string]string{}))
	require.NoError(t, err)

	_, err = rt.Logger()
	assert.ErrorIs(t, err, ErrNotSetUp)
}

func TestRuntime_SetupLogging(t *testing.T) {
	current, logPath := newDeployment(t, map[string]any{"Level": "info"})

	rt, err := NewRuntime("Billing.Service", models.RuntimeInfo{},
		config.WithWorkingDirectory(current),
		config.WithEnvironment(map[string]string{"ASPNETCORE_ENVIRONMENT": "Production"}))
	require.NoError(t, err)
	assert.Equal(t, "Billing.Service", rt.AppFullName())

	require.NoError(t, rt.SetupLogging())

	assert.Equal(t, "ParentProd", rt.Configuration().String("Setting1"))
	assert.Len(t, rt.Report().Used(), 2)

	l, err := rt.Logger()
	require.NoError(t, err)
	require.NotNil(t, l)

	entries := readLogLines(t, logPath)
	require.Len(t, entries, 2)
	assert.Equal(t, MsgSettingsLoaded, entries[0]["message"])
	assert.Equal(t, MsgStarting, entries[1]["message"])
	assert.Equal(t, "Billing.Service", entries[1]["role"])
	assert.Equal(t, "Production", entries[1]["environment"])
}

func TestRuntime_QualifiedNameAndDebugMode(t *testing.T) {
	current, logPath := newDeployment(t, map[string]any{"Level": "error"})

	rt, err := NewRuntime("Billing.Service", models.RuntimeInfo{DebugMode: true, QualifiedName: "Billing.Service, v2"},
		config.WithWorkingDirectory(current), config.WithEnvironment(map[string]string{}))
	require.NoError(t, err)
	require.NoError(t, rt.SetupLogging())

	l, err := rt.Logger()
	require.NoError(t, err)
	l.Debug().Msg("debug enabled")

	entries := readLogLines(t, logPath)
	require.Len(t, entries, 3)
	assert.Equal(t, "Billing.Service, v2", entries[2]["role"])
	assert.Equal(t, "debug enabled", entries[2]["message"])
}

func TestRuntime_DevelopmentModeUsesConsole(t *testing.T) {
	current, logPath := newDeployment(t, map[string]any{})

	rt, err := NewRuntime("Billing.Service", models.RuntimeInfo{DevelopmentMode: true},
		config.WithWorkingDirectory(current), config.WithEnvironment(map[string]string{}))
	require.NoError(t, err)
	require.NoError(t, rt.SetupLogging())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), MsgStarting)
	assert.False(t, json.Valid([]byte(strings.SplitN(string(data), "\n", 2)[0])))
}

func TestRuntime_SettingsAdjustedBeforeSetup(t *testing.T) {
	current, _ := newDeployment(t, map[string]any{})

	rt, err := NewRuntime("Billing.Service", models.RuntimeInfo{},
		config.WithWorkingDirectory(current), config.WithEnvironment(map[string]string{}))
	require.NoError(t, err)
	rt.Settings().SetUseParentSettings(false)

	require.NoError(t, rt.SetupLogging())
	assert.Equal(t, "CurrentProd", rt.Configuration().String("Setting1"))
}

func TestRuntime_SetupLoggingTwice(t *testing.T) {
	current, _ := newDeployment(t, map[string]any{})

	rt, err := NewRuntime("Billing.Service", models.RuntimeInfo{},
		config.WithWorkingDirectory(current), config.WithEnvironment(map[string]string{}))
	require.NoError(t, err)
	require.NoError(t, rt.SetupLogging())

	assert.ErrorIs(t, rt.SetupLogging(), config.ErrAlreadyBuilt)
}

func TestRuntime_InvalidLoggingSection(t *testing.T) {
	current, _ := newDeployment(t, map[string]any{"Format": "xml"})

	rt, err := NewRuntime("Billing.Service", models.RuntimeInfo{},
		config.WithWorkingDirectory(current), config.WithEnvironment(map[string]string{}))
	require.NoError(t, err)

	assert.Error(t, rt.SetupLogging())
}

func TestRuntime_Close(t *testing.T) {
	current, logPath := newDeployment(t, map[string]any{})

	rt, err := NewRuntime("Billing.Service", models.RuntimeInfo{},
		config.WithWorkingDirectory(current), config.WithEnvironment(map[string]string{}))
	require.NoError(t, err)
	require.NoError(t, rt.Close())

	require.NoError(t, rt.SetupLogging())
	require.NoError(t, rt.Close())
	assert.ErrorIs(t, rt.Close(), os.ErrClosed)

	entries := readLogLines(t, logPath)
	assert.Len(t, entries, 2)
}
