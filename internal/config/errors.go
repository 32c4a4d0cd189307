// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// Error kinds carried by [ConfigurationError]. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrMissingRequiredFile indicates that a settings file marked as
	// required (a custom file added with requiredToExist, or the sensitive
	// file) does not exist.
	ErrMissingRequiredFile = errors.New("required settings file does not exist")

	// ErrInvalidWorkingDirectory indicates that the working directory the
	// registry was constructed with does not exist or is not a directory.
	ErrInvalidWorkingDirectory = errors.New("invalid working directory")

	// ErrAlreadyBuilt is returned by a second call to [SourceRegistry.Build].
	ErrAlreadyBuilt = errors.New("source registry already built")

	// ErrSourceLoadFailed indicates that an existing source could not be
	// read or parsed by the store.
	ErrSourceLoadFailed = errors.New("settings source could not be loaded")
)

// ConfigurationError is the fatal error type produced while assembling the
// configuration. Kind is one of the Err* sentinels above, Path names the
// offending file or directory and Err holds the underlying cause, if any.
type ConfigurationError struct {
	Kind error
	Path string
	Err  error
}

func newConfigurationError(kind error, path string, cause error) *ConfigurationError {
	return &ConfigurationError{Kind: kind, Path: path, Err: cause}
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	msg := e.Kind.Error()
	if e.Path != "" {
		msg = fmt.Sprintf("%s: [ %s ]", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

// Unwrap exposes both the kind and the cause to [errors.Is] and [errors.As].
func (e *ConfigurationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}
