package config

import (
	"fmt"

	"github.com/MKhiriev/go-apprun/internal/logger"
)

// AppliedSource is the outcome of applying one [SourceDescriptor].
type AppliedSource struct {
	Source SourceDescriptor
	// Found is true when the file existed (always true for env prefixes).
	Found bool
	// Keys is the number of variables loaded by an env prefix source.
	Keys int
}

// Report lists the applied sources in application order.
type Report []AppliedSource

// Used returns the sources that actually contributed to the store.
func (r Report) Used() []SourceDescriptor {
	used := make([]SourceDescriptor, 0, len(r))
	for _, a := range r {
		if a.Found {
			used = append(used, a.Source)
		}
	}

	return used
}

// Builder applies an ordered source list to a [Store]. It owns exclusive
// write access to the store while [Builder.Apply] runs.
type Builder struct {
	store   Store
	environ map[string]string
	log     *logger.Logger
}

// NewBuilder returns a Builder writing into store. environ is the
// environment snapshot env prefix sources read from; log receives one line
// per file source.
func NewBuilder(store Store, environ map[string]string, log *logger.Logger) *Builder {
	if log == nil {
		log = logger.Nop()
	}

	return &Builder{
		store:   store,
		environ: copyEnvironment(environ),
		log:     log,
	}
}

// Apply loads every source in order, so later sources override earlier
// ones for identical keys. Missing optional files are skipped. A missing
// required file aborts with a [ConfigurationError] wrapping
// [ErrMissingRequiredFile]; a source the store cannot parse aborts with
// [ErrSourceLoadFailed].
//
// The report covers every source processed before the first error.
func (b *Builder) Apply(sources []SourceDescriptor) (Report, error) {
	report := make(Report, 0, len(sources))
	for _, src := range sources {
		applied, err := b.apply(src)
		if err != nil {
			return report, err
		}
		report = append(report, applied)
	}

	return report, nil
}

func (b *Builder) apply(src SourceDescriptor) (AppliedSource, error) {
	switch src.Kind {
	case KindEnvironmentPrefix:
		return b.applyEnvironment(src)
	case KindFile:
		return b.applyFile(src)
	default:
		return AppliedSource{}, fmt.Errorf("unknown source kind %s", src.Kind)
	}
}

func (b *Builder) applyEnvironment(src SourceDescriptor) (AppliedSource, error) {
	keys, err := b.store.LoadEnvironment(src.Location, b.environ)
	if err != nil {
		return AppliedSource{}, newConfigurationError(ErrSourceLoadFailed, src.Location, err)
	}

	b.log.Debug().Str("prefix", src.Location).Int("keys", keys).Msg("environment variables applied")
	return AppliedSource{Source: src, Found: true, Keys: keys}, nil
}

func (b *Builder) applyFile(src SourceDescriptor) (AppliedSource, error) {
	if !fileExists(src.Location) {
		if src.Required {
			b.log.Error().Str("file", src.Location).Msg("required settings file does not exist")
			return AppliedSource{}, newConfigurationError(ErrMissingRequiredFile, src.Location, nil)
		}

		b.log.Info().Str("file", src.Location).Msg("optional settings file does not exist and will not be used")
		return AppliedSource{Source: src}, nil
	}

	if err := b.store.LoadFile(src.Location); err != nil {
		return AppliedSource{}, newConfigurationError(ErrSourceLoadFailed, src.Location, err)
	}

	b.log.Info().Str("file", src.Location).Msg("settings file exists and will be used")
	return AppliedSource{Source: src, Found: true}, nil
}

// Load builds registry and applies the resulting sources to store, using
// the registry's environment snapshot and logger.
func Load(registry *SourceRegistry, store Store) (Report, error) {
	sources, err := registry.Build()
	if err != nil {
		return nil, fmt.Errorf("error building settings sources: %w", err)
	}

	report, err := NewBuilder(store, registry.environ, registry.log.GetChildLogger()).Apply(sources)
	if err != nil {
		return report, fmt.Errorf("error applying settings sources: %w", err)
	}

	return report, nil
}
