// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-apprun/internal/config"
	"github.com/MKhiriev/go-apprun/internal/logger"
	"github.com/MKhiriev/go-apprun/models"
)

// ErrNotSetUp is returned by accessors used before [Runtime.SetupLogging].
var ErrNotSetUp = errors.New("runtime logging is not set up")

// Runtime holds what most applications need to start: the settings source
// registry, the merged configuration and the application logger.
type Runtime struct {
	appFullName string
	info        models.RuntimeInfo

	settings *config.SourceRegistry
	store    config.Store
	logger   *logger.Logger
	report   config.Report
}

// NewRuntime creates the source registry for appFullName. opts are passed
// to [config.NewSourceRegistry]; callers adjust the returned registry via
// [Runtime.Settings] before calling [Runtime.SetupLogging].
func NewRuntime(appFullName string, info models.RuntimeInfo, opts ...config.RegistryOption) (*Runtime, error) {
	settings, err := config.NewSourceRegistry(opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating settings registry: %w", err)
	}

	return &Runtime{
		appFullName: appFullName,
		info:        info,
		settings:    settings,
		store:       config.NewKoanfStore(),
	}, nil
}

// AppFullName returns the application name the runtime was created with.
func (r *Runtime) AppFullName() string {
	return r.appFullName
}

// Info returns the startup flags.
func (r *Runtime) Info() models.RuntimeInfo {
	return r.info
}

// Settings returns the source registry to configure.
func (r *Runtime) Settings() *config.SourceRegistry {
	return r.settings
}

// Configuration returns the merged configuration. It is empty until
// [Runtime.SetupLogging] succeeds.
func (r *Runtime) Configuration() config.Store {
	return r.store
}

// Report returns which sources were applied by [Runtime.SetupLogging].
func (r *Runtime) Report() config.Report {
	return r.report
}

// Logger returns the application logger.
func (r *Runtime) Logger() (*logger.Logger, error) {
	if r.logger == nil {
		return nil, ErrNotSetUp
	}

	return r.logger, nil
}

// SetupLogging builds the configuration from the registry and creates the
// application logger from its "Logging" section. The logger is bound to the
// qualified application name.
//
// SetupLogging builds the registry and therefore succeeds only once.
func (r *Runtime) SetupLogging() error {
	report, err := config.Load(r.settings, r.store)
	if err != nil {
		return fmt.Errorf("error loading application settings: %w", err)
	}
	r.report = report

	var overrides []logger.Override
	if r.info.DebugMode {
		overrides = append(overrides, logger.WithLevel("debug"))
	}
	if r.info.DevelopmentMode {
		overrides = append(overrides, logger.WithFormat(logger.FormatConsole))
	}

	l, err := logger.New(r.store, r.contextName(), overrides...)
	if err != nil {
		return fmt.Errorf("error creating application logger: %w", err)
	}
	r.logger = l

	l.Info().Int("sources", len(report.Used())).Msg(MsgSettingsLoaded)
	l.Info().Str("app", r.appFullName).Str("environment", r.settings.Paths().EnvironmentName).Msg(MsgStarting)

	return nil
}

// Close releases the log output opened by [Runtime.SetupLogging]. It is
// safe to call before setup.
func (r *Runtime) Close() error {
	if r.logger == nil {
		return nil
	}

	return r.logger.Close()
}

func (r *Runtime) contextName() string {
	if r.info.QualifiedName != "" {
		return r.info.QualifiedName
	}

	return r.appFullName
}
