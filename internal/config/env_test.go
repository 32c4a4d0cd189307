// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnvironmentName_FirstNonEmptyWins(t *testing.T) {
	name, err := ResolveEnvironmentName(map[string]string{
		"ASPNETCORE_ENVIRONMENT": "",
		"DOTNET_ENVIRONMENT":     "Development",
	})

	require.NoError(t, err)
	assert.Equal(t, "Development", name)
}

func TestResolveEnvironmentName_Unset(t *testing.T) {
	name, err := ResolveEnvironmentName(map[string]string{"PATH": "/usr/bin"})

	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestResolveEnvironmentName_NilSnapshot(t *testing.T) {
	name, err := ResolveEnvironmentName(nil)

	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestProcessEnvironment_ReflectsSetenv(t *testing.T) {
	t.Setenv("APPRUN_TEST_VALUE", "from-process")

	assert.Equal(t, "from-process", ProcessEnvironment()["APPRUN_TEST_VALUE"])
}

func TestEnvironmentKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		env    string
		want   string
	}{
		{"plain", "APP_", "APP_Name", "Name"},
		{"nested", "APP_", "APP_ConnectionStrings__Main__X", "ConnectionStrings:Main:X"},
		{"case-insensitive prefix", "APP_", "app_lower", "lower"},
		{"prefix only", "APP_", "APP_", ""},
		{"shorter than prefix", "APP_", "AP", ""},
		{"other prefix", "APP_", "OTHER_Name", ""},
		{"empty prefix", "", "B__C", "B:C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, environmentKey(tt.prefix, tt.env))
		})
	}
}

func TestPrefixedEnvironment_SortedAndFiltered(t *testing.T) {
	environ := map[string]string{
		"APP_Name":           "demo",
		"APP_Logging__Level": "debug",
		"app_lower":          "x=y",
		"APP_":               "prefix only",
		"OTHER_Name":         "other",
	}

	assert.Equal(t, []string{
		"APP_Logging__Level=debug",
		"APP_Name=demo",
		"app_lower=x=y",
	}, prefixedEnvironment(environ, "APP_"))
}

func TestPrefixedEnvironment_NestedKeyShadowsParentValue(t *testing.T) {
	environ := map[string]string{
		"APP_Logging":             "x",
		"APP_Logging__Level":      "debug",
		"APP_Logging__Sink__Path": "/var/log/app.log",
		"APP_Logging__Sink":       "file",
		"APP_LoggingEnabled":      "true",
	}

	assert.Equal(t, []string{
		"APP_LoggingEnabled=true",
		"APP_Logging__Level=debug",
		"APP_Logging__Sink__Path=/var/log/app.log",
	}, prefixedEnvironment(environ, "APP_"))
}

func TestPrefixedEnvironment_EmptyPrefixSelectsAll(t *testing.T) {
	assert.Equal(t, []string{"A=1", "B__C=2"}, prefixedEnvironment(map[string]string{"A": "1", "B__C": "2"}, ""))
}
