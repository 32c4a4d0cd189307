// Package config assembles the application configuration from layered
// sources and merges them into a key-value [Store].
//
// Sources are applied in the following order (later sources override
// earlier values for the same key):
//  1. Environment variables matching the registered prefixes
//  2. appsettings.json in the current directory
//  3. appsettings.json in the parent directory
//  4. appsettings.<env>.json in the current directory
//  5. appsettings.<env>.json in the parent directory
//  6. The sensitive settings file
//  7. Files added with [SourceRegistry.AddSettingFile]
//
// The environment name comes from ASPNETCORE_ENVIRONMENT, falling back to
// DOTNET_ENVIRONMENT. [SourceRegistry] decides which sources take part and
// in what order; [Builder] applies them. [Load] does both.
package config
