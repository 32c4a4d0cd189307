package config

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Store is the layered key-value store the configuration is merged into.
//
// Writes happen only while a [Builder] applies sources; afterwards the
// store is read-only and may be shared by any number of readers.
type Store interface {
	// LoadFile parses the settings file at path and merges it, overriding
	// values already present for the same keys.
	LoadFile(path string) error

	// LoadEnvironment merges the variables of environ carrying prefix with
	// the same override semantics as LoadFile and returns how many were
	// loaded.
	LoadEnvironment(prefix string, environ map[string]string) (int, error)

	// Exists reports whether key is present in the merged configuration.
	Exists(key string) bool

	// String returns the value of key as a string ("" when absent).
	String(key string) string

	// Get returns the raw value of key (nil when absent).
	Get(key string) any

	// Unmarshal decodes the subtree rooted at path into out.
	Unmarshal(path string, out any) error

	// All returns the merged configuration as a nested map.
	All() map[string]any

	// Keys returns every flattened key path.
	Keys() []string
}
