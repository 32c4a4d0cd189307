// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// KeyDelimiter separates nested key segments in store paths
// (e.g. "Logging:Level"). JSON keys containing dots stay intact.
const KeyDelimiter = ":"

// KoanfStore is the [Store] implementation backed by koanf. Every load
// merges into the existing tree: later values override earlier ones for the
// same key and nested objects are merged key by key.
type KoanfStore struct {
	k *koanf.Koanf
}

// NewKoanfStore returns an empty store.
func NewKoanfStore() *KoanfStore {
	return &KoanfStore{k: koanf.New(KeyDelimiter)}
}

// LoadFile parses the file at path and merges it into the store. The
// parser is picked by extension: .yaml and .yml are YAML, anything else is
// JSON.
func (s *KoanfStore) LoadFile(path string) error {
	if err := s.k.Load(file.Provider(path), parserFor(path)); err != nil {
		return fmt.Errorf("error loading settings file %s: %w", path, err)
	}

	return nil
}

// LoadEnvironment merges the variables of environ whose name starts with
// prefix (case-insensitive, "" selects all) and returns how many were
// loaded. The prefix is stripped and [EnvKeySeparator] separates nested
// keys, so MYAPP_Logging__Level sets Logging:Level.
func (s *KoanfStore) LoadEnvironment(prefix string, environ map[string]string) (int, error) {
	vars := prefixedEnvironment(environ, prefix)
	provider := env.Provider(KeyDelimiter, env.Opt{
		EnvironFunc: func() []string { return vars },
		TransformFunc: func(name, value string) (string, any) {
			return environmentKey(prefix, name), value
		},
	})

	if err := s.k.Load(provider, nil); err != nil {
		return 0, fmt.Errorf("error loading environment variables with prefix %q: %w", prefix, err)
	}

	return len(vars), nil
}

// Exists reports whether key is present.
func (s *KoanfStore) Exists(key string) bool {
	return s.k.Exists(key)
}

// String returns the value of key as a string, or "" if key is absent.
func (s *KoanfStore) String(key string) string {
	return s.k.String(key)
}

// Get returns the raw value of key, or nil if key is absent.
func (s *KoanfStore) Get(key string) any {
	return s.k.Get(key)
}

// Unmarshal decodes the subtree at path into out. An empty path decodes
// the whole configuration.
func (s *KoanfStore) Unmarshal(path string, out any) error {
	if err := s.k.Unmarshal(path, out); err != nil {
		return fmt.Errorf("error decoding settings at %q: %w", path, err)
	}

	return nil
}

// All returns a copy of the merged configuration as a nested map.
func (s *KoanfStore) All() map[string]any {
	return s.k.Raw()
}

// Keys returns every flattened key path in the store.
func (s *KoanfStore) Keys() []string {
	return s.k.Keys()
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return json.Parser()
	}
}
