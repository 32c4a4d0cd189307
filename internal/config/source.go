// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// SourceKind identifies the origin type of a [SourceDescriptor].
type SourceKind int

const (
	// KindEnvironmentPrefix selects every environment variable whose name
	// starts with Location.
	KindEnvironmentPrefix SourceKind = iota
	// KindFile is a structured settings file located at Location.
	KindFile
)

// String returns a short human-readable name of the kind.
func (k SourceKind) String() string {
	switch k {
	case KindEnvironmentPrefix:
		return "env"
	case KindFile:
		return "file"
	default:
		return fmt.Sprintf("SourceKind(%d)", int(k))
	}
}

// SourceDescriptor describes one configuration source. A slice of
// descriptors is ordered from lowest to highest priority.
type SourceDescriptor struct {
	// Kind is the source type.
	Kind SourceKind
	// Location is a file path for KindFile or a variable name prefix for
	// KindEnvironmentPrefix.
	Location string
	// Required makes a missing file fatal. Ignored for env prefixes.
	Required bool
}

// EnvironmentPrefixSource builds an environment-variable descriptor.
func EnvironmentPrefixSource(prefix string) SourceDescriptor {
	return SourceDescriptor{Kind: KindEnvironmentPrefix, Location: prefix}
}

// FileSource builds a file descriptor.
func FileSource(path string, required bool) SourceDescriptor {
	return SourceDescriptor{Kind: KindFile, Location: path, Required: required}
}

func (d SourceDescriptor) String() string {
	if d.Kind == KindFile && d.Required {
		return fmt.Sprintf("%s(%s, required)", d.Kind, d.Location)
	}

	return fmt.Sprintf("%s(%s)", d.Kind, d.Location)
}
