// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
)

// EnvKeySeparator separates nested key segments inside an environment
// variable name (e.g. MYAPP_Logging__Level -> Logging:Level).
const EnvKeySeparator = "__"

// hostEnvironment lists the variables that name the deployment environment.
// Field order is lookup order: the first non-empty value wins.
type hostEnvironment struct {
	ASPNetCore string `env:"ASPNETCORE_ENVIRONMENT"`
	DotNet     string `env:"DOTNET_ENVIRONMENT"`
}

func (h hostEnvironment) name() string {
	for _, v := range []string{h.ASPNetCore, h.DotNet} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}

	return ""
}

// ProcessEnvironment returns a snapshot of the current process environment.
func ProcessEnvironment() map[string]string {
	return env.ToMap(os.Environ())
}

// ResolveEnvironmentName returns the deployment environment name found in
// environ, checking ASPNETCORE_ENVIRONMENT and then DOTNET_ENVIRONMENT.
// An empty string means no environment is configured.
func ResolveEnvironmentName(environ map[string]string) (string, error) {
	var host hostEnvironment
	if err := env.ParseWithOptions(&host, env.Options{Environment: environ}); err != nil {
		return "", fmt.Errorf("error reading environment name: %w", err)
	}

	return host.name(), nil
}

// environmentKey maps a variable name to its settings key: the prefix is
// matched case-insensitively and stripped, and [EnvKeySeparator] becomes
// [KeyDelimiter]. It returns "" when name does not carry prefix or nothing
// is left after stripping it.
func environmentKey(prefix, name string) string {
	if len(name) <= len(prefix) || !strings.EqualFold(name[:len(prefix)], prefix) {
		return ""
	}

	return strings.ReplaceAll(name[len(prefix):], EnvKeySeparator, KeyDelimiter)
}

// prefixedEnvironment returns the NAME=value entries of environ that carry
// prefix, sorted by name. A variable whose key is also the parent of another
// variable's key is dropped, so APP_Logging__Level wins over APP_Logging.
func prefixedEnvironment(environ map[string]string, prefix string) []string {
	keys := make(map[string]string)
	for name := range environ {
		if key := environmentKey(prefix, name); key != "" {
			keys[name] = key
		}
	}

	parents := make(map[string]struct{})
	for _, key := range keys {
		for i := range len(key) {
			if strings.HasPrefix(key[i:], KeyDelimiter) {
				parents[key[:i]] = struct{}{}
			}
		}
	}

	vars := make([]string, 0, len(keys))
	for _, name := range slices.Sorted(maps.Keys(keys)) {
		if _, shadowed := parents[keys[name]]; shadowed {
			continue
		}
		vars = append(vars, name+"="+environ[name])
	}

	return vars
}

func copyEnvironment(environ map[string]string) map[string]string {
	if environ == nil {
		return map[string]string{}
	}

	return maps.Clone(environ)
}
