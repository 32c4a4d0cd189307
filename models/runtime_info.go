// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RuntimeInfo carries the startup flags an application passes to its
// runtime before any configuration has been read.
type RuntimeInfo struct {
	// DevelopmentMode switches the application logger to the human-readable
	// console format regardless of the configured format.
	DevelopmentMode bool

	// DebugMode forces the application logger to the debug level regardless
	// of the configured level.
	DebugMode bool

	// QualifiedName is the fully qualified application name, used as the
	// logger context when set. Defaults to the runtime's full name.
	QualifiedName string
}
