package secret

import (
	"errors"
	"fmt"
	"os"
	"sort"
)

// ErrNotFound is returned when a secret name is unknown or unset.
var ErrNotFound = errors.New("secret not found")

// Store resolves secrets by name.
type Store interface {
	Get(name string) (string, error)
}

// notFound wraps ErrNotFound with the requested name.
func notFound(name string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}

// EnvStore reads secrets from the process environment. An empty variable
// counts as unset.
type EnvStore struct {
	Lookup func(key string) (string, bool)
}

func NewEnvStore() EnvStore {
	return EnvStore{Lookup: os.LookupEnv}
}

func (s EnvStore) Get(name string) (string, error) {
	lookup := s.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	v, ok := lookup(name)
	if !ok || v == "" {
		return "", notFound(name)
	}
	return v, nil
}

// MapStore is an in-memory store, used for dotenv files and tests.
type MapStore map[string]string

func (s MapStore) Get(name string) (string, error) {
	v, ok := s[name]
	if !ok || v == "" {
		return "", notFound(name)
	}
	return v, nil
}

// Names returns the stored names in sorted order.
func (s MapStore) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Chain tries each store in order and returns the first value found. Errors
// other than ErrNotFound stop the lookup.
type Chain []Store

func (c Chain) Get(name string) (string, error) {
	for _, s := range c {
		v, err := s.Get(name)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return "", err
		}
	}
	return "", notFound(name)
}
