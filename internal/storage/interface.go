package storage

import "errors"

// ErrSlotEmpty is returned by Read when nothing has been written under a key.
var ErrSlotEmpty = errors.New("storage slot is empty")

// Slot is a durable key/value facility holding whole serialized blobs.
// Writes replace the previous value for the key in a single step.
type Slot interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	Read(key string) ([]byte, error)
	Write(key string, data []byte) error

	// Utils
	GetConfigPath() string
}
