package config

import (
	"time"

	"github.com/spf13/viper"
)

// Store is the configuration store backing the CLI. It wraps viper with
// dot-notation keys so callers never depend on viper directly, which keeps
// provider factories and commands testable with a plain in-memory store.
type Store struct {
	v *viper.Viper
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{v: viper.New()}
}

// LoadYAMLFile reads a YAML config file into the store.
func (s *Store) LoadYAMLFile(path string) error {
	s.v.SetConfigFile(path)
	s.v.SetConfigType("yaml")
	return s.v.ReadInConfig()
}

// Set stores a value under the given dot-notation key.
func (s *Store) Set(key string, value interface{}) {
	s.v.Set(key, value)
}

// SetDefault sets a default value that is used when no explicit value exists.
func (s *Store) SetDefault(key string, value interface{}) {
	s.v.SetDefault(key, value)
}

// IsSet returns true if the key has an explicit (non-default) value.
func (s *Store) IsSet(key string) bool {
	return s.v.IsSet(key)
}

// Get returns the raw value for a key, checking explicit values then defaults.
func (s *Store) Get(key string) (interface{}, bool) {
	val := s.v.Get(key)
	return val, val != nil
}

// GetString returns the string value for a key.
func (s *Store) GetString(key string) string {
	return s.v.GetString(key)
}

// GetInt returns the integer value for a key.
func (s *Store) GetInt(key string) int {
	return s.v.GetInt(key)
}

// GetBool returns the boolean value for a key.
func (s *Store) GetBool(key string) bool {
	return s.v.GetBool(key)
}

// GetDuration returns the duration value for a key.
func (s *Store) GetDuration(key string) time.Duration {
	return s.v.GetDuration(key)
}

// GetStringSlice returns a string slice for a key.
func (s *Store) GetStringSlice(key string) []string {
	return s.v.GetStringSlice(key)
}

// Sub returns a new Store scoped to the given prefix, nil when nothing is
// set under it. For example, Sub("providers.openai") returns a store where
// "api_key" maps to the original "providers.openai.api_key".
func (s *Store) Sub(prefix string) *Store {
	sub := s.v.Sub(prefix)
	if sub == nil {
		return nil
	}
	return &Store{v: sub}
}
