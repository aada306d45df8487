package ports

import "pnc-buildconfig/internal/store"

// ConfigSourcePort loads a build configuration file into a store.
type ConfigSourcePort interface {
	Load(path string) (*store.Store, error)
}
