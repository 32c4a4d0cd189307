// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app wires the configuration sources, the merged settings store
// and the application logger into a single [Runtime].
//
// All Msg* constants are the log messages written by the runtime. Keeping
// them in one place ensures consistent wording across binaries.
package app

const (
	// MsgStarting is logged once the application logger is ready.
	MsgStarting = "starting application"

	// MsgSettingsLoaded is logged with the number of sources that
	// contributed to the configuration.
	MsgSettingsLoaded = "application settings loaded"
)
