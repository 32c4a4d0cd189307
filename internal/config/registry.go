// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-apprun/internal/logger"
)

// SourceRegistry accumulates the configuration sources of an application
// and computes their final precedence order in [SourceRegistry.Build].
//
// A registry is configured by a single goroutine and built exactly once.
type SourceRegistry struct {
	paths   ResolvedPaths
	environ map[string]string
	log     *logger.Logger

	envPrefixes []string
	customFiles []SourceDescriptor

	useParentSettings         bool
	useDeployedFolderSettings bool
	useSensitiveSettings      bool
	sensitiveLocation         string

	built bool
}

// RegistryOption customizes [NewSourceRegistry].
type RegistryOption func(*registryOptions)

type registryOptions struct {
	workingDirectory string
	environ          map[string]string
	log              *logger.Logger
}

// WithWorkingDirectory roots the registry at dir instead of the process
// current directory.
func WithWorkingDirectory(dir string) RegistryOption {
	return func(o *registryOptions) {
		o.workingDirectory = dir
	}
}

// WithEnvironment replaces the process environment snapshot with environ.
// It is used both to resolve the environment name and to ingest prefixed
// variables.
func WithEnvironment(environ map[string]string) RegistryOption {
	return func(o *registryOptions) {
		o.environ = environ
	}
}

// WithLogger sets the logger receiving the registry diagnostics.
func WithLogger(l *logger.Logger) RegistryOption {
	return func(o *registryOptions) {
		o.log = l
	}
}

// NewSourceRegistry resolves the working directory, its parent and the
// environment name once and returns a registry ready to be configured.
//
// Parent and current-directory base settings are enabled by default; the
// sensitive source is disabled until [SourceRegistry.EnableSensitiveSource]
// is called.
//
// Returns a [ConfigurationError] wrapping [ErrInvalidWorkingDirectory] if the
// working directory does not exist.
func NewSourceRegistry(opts ...RegistryOption) (*SourceRegistry, error) {
	var o registryOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.log == nil {
		o.log = logger.Nop()
	}
	if o.environ == nil {
		o.environ = ProcessEnvironment()
	}
	if o.workingDirectory == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, newConfigurationError(ErrInvalidWorkingDirectory, "", err)
		}
		o.workingDirectory = wd
	}

	current, parent, err := resolveDirectories(o.workingDirectory)
	if err != nil {
		return nil, err
	}
	if parent == "" {
		o.log.Warn().Str("dir", current).Msg("working directory has no parent, parent settings will not be used")
	}

	envName, err := ResolveEnvironmentName(o.environ)
	if err != nil {
		return nil, fmt.Errorf("error resolving environment name: %w", err)
	}
	if envName == "" {
		o.log.Warn().Msg("environment name is not set, environment specific settings files will not be used")
	}

	return &SourceRegistry{
		paths: ResolvedPaths{
			CurrentDirectory: current,
			ParentDirectory:  parent,
			EnvironmentName:  envName,
		},
		environ:                   copyEnvironment(o.environ),
		log:                       o.log,
		useParentSettings:         true,
		useDeployedFolderSettings: true,
	}, nil
}

// Paths returns the directories and environment name resolved at
// construction.
func (r *SourceRegistry) Paths() ResolvedPaths {
	return r.paths
}

// Environ returns a copy of the environment snapshot.
func (r *SourceRegistry) Environ() map[string]string {
	return copyEnvironment(r.environ)
}

// Logger returns the diagnostics logger.
func (r *SourceRegistry) Logger() *logger.Logger {
	return r.log
}

// UseParentSettings reports whether appsettings.json from the parent
// directory is included.
func (r *SourceRegistry) UseParentSettings() bool {
	return r.useParentSettings
}

// SetUseParentSettings toggles appsettings.json from the parent directory.
func (r *SourceRegistry) SetUseParentSettings(use bool) {
	r.useParentSettings = use
}

// UseDeployedFolderSettings reports whether appsettings.json from the
// current directory is included.
func (r *SourceRegistry) UseDeployedFolderSettings() bool {
	return r.useDeployedFolderSettings
}

// SetUseDeployedFolderSettings toggles appsettings.json from the current
// directory.
func (r *SourceRegistry) SetUseDeployedFolderSettings(use bool) {
	r.useDeployedFolderSettings = use
}

// SensitiveSource returns the sensitive file location and whether the
// sensitive source is enabled.
func (r *SourceRegistry) SensitiveSource() (string, bool) {
	return r.sensitiveLocation, r.useSensitiveSettings
}

// EnableSensitiveSource sets the sensitive settings file and enables it.
// The file is applied after every built-in source and must exist when
// [SourceRegistry.Build] is called.
func (r *SourceRegistry) EnableSensitiveSource(location string) {
	r.sensitiveLocation = location
	r.useSensitiveSettings = true
}

// DisableSensitiveSource clears the sensitive settings file.
func (r *SourceRegistry) DisableSensitiveSource() {
	r.sensitiveLocation = ""
	r.useSensitiveSettings = false
}

// AddEnvironmentVariablePrefix registers environment variables starting
// with prefix as a source. Prefixes are applied first, in registration
// order, so every settings file can override them.
func (r *SourceRegistry) AddEnvironmentVariablePrefix(prefix string) {
	r.envPrefixes = append(r.envPrefixes, prefix)
}

// AddSettingFile registers an additional settings file. Custom files are
// applied last, in call order, and therefore win over every other source.
//
// When requiredToExist is true the file is checked immediately and a
// [ConfigurationError] wrapping [ErrMissingRequiredFile] is returned if it
// does not exist.
func (r *SourceRegistry) AddSettingFile(location string, requiredToExist bool) error {
	if requiredToExist && !fileExists(location) {
		return newConfigurationError(ErrMissingRequiredFile, location, nil)
	}

	r.customFiles = append(r.customFiles, FileSource(location, requiredToExist))
	return nil
}

// Build returns the ordered source list, lowest priority first:
//
//  1. environment variable prefixes
//  2. <current>/appsettings.json
//  3. <parent>/appsettings.json
//  4. <current>/appsettings.<env>.json
//  5. <parent>/appsettings.<env>.json
//  6. the sensitive file
//  7. custom files
//
// Only the sensitive file is checked for existence here. Environment
// specific files are omitted when no environment name was resolved.
//
// Build may be called once; later calls return [ErrAlreadyBuilt].
func (r *SourceRegistry) Build() ([]SourceDescriptor, error) {
	if r.built {
		return nil, newConfigurationError(ErrAlreadyBuilt, r.paths.CurrentDirectory, nil)
	}

	sources := make([]SourceDescriptor, 0, len(r.envPrefixes)+len(r.customFiles)+5)
	for _, prefix := range r.envPrefixes {
		sources = append(sources, EnvironmentPrefixSource(prefix))
	}

	if r.useDeployedFolderSettings {
		sources = append(sources, FileSource(BaseSettingsFile(r.paths.CurrentDirectory), false))
	}
	if r.useParentSettings && r.paths.HasParent() {
		sources = append(sources, FileSource(BaseSettingsFile(r.paths.ParentDirectory), false))
	}

	if r.paths.HasEnvironment() {
		sources = append(sources,
			FileSource(EnvironmentSettingsFile(r.paths.CurrentDirectory, r.paths.EnvironmentName), false))
		if r.paths.HasParent() {
			sources = append(sources,
				FileSource(EnvironmentSettingsFile(r.paths.ParentDirectory, r.paths.EnvironmentName), false))
		}
	}

	if r.useSensitiveSettings {
		if !fileExists(r.sensitiveLocation) {
			return nil, newConfigurationError(ErrMissingRequiredFile, r.sensitiveLocation, nil)
		}
		sources = append(sources, FileSource(r.sensitiveLocation, true))
	}

	sources = append(sources, r.customFiles...)

	r.built = true
	return sources, nil
}
