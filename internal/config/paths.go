// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"os"
	"path/filepath"
)

// Base name and extension of the standard settings files.
const (
	SettingsBaseName  = "appsettings"
	SettingsExtension = ".json"
)

// ResolvedPaths is the snapshot of process state a [SourceRegistry] works
// from. It is captured once at construction and never re-read.
type ResolvedPaths struct {
	// CurrentDirectory is the absolute working directory.
	CurrentDirectory string
	// ParentDirectory is the parent of CurrentDirectory, or "" when
	// CurrentDirectory is a filesystem root.
	ParentDirectory string
	// EnvironmentName is the deployment environment (e.g. "Development"),
	// or "" when none is configured.
	EnvironmentName string
}

// HasParent reports whether a parent directory is available.
func (p ResolvedPaths) HasParent() bool {
	return p.ParentDirectory != ""
}

// HasEnvironment reports whether an environment name was resolved.
func (p ResolvedPaths) HasEnvironment() bool {
	return p.EnvironmentName != ""
}

// BaseSettingsFile returns dir/appsettings.json.
func BaseSettingsFile(dir string) string {
	return filepath.Join(dir, SettingsBaseName+SettingsExtension)
}

// EnvironmentSettingsFile returns dir/appsettings.<environment>.json.
func EnvironmentSettingsFile(dir, environment string) string {
	return filepath.Join(dir, SettingsBaseName+"."+environment+SettingsExtension)
}

// resolveDirectories validates dir and computes its absolute form and its
// parent. A root directory has no parent and yields parent == "".
func resolveDirectories(dir string) (current, parent string, err error) {
	current, err = filepath.Abs(dir)
	if err != nil {
		return "", "", newConfigurationError(ErrInvalidWorkingDirectory, dir, err)
	}

	info, err := os.Stat(current)
	if err != nil {
		return "", "", newConfigurationError(ErrInvalidWorkingDirectory, current, err)
	}
	if !info.IsDir() {
		return "", "", newConfigurationError(ErrInvalidWorkingDirectory, current,
			errors.New("not a directory"))
	}

	parent = filepath.Dir(current)
	if parent == current {
		parent = ""
	}

	return current, parent, nil
}

// fileExists reports whether path names an existing regular file (or a
// symlink to one).
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
