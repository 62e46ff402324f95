// Package viper provides a module-local instance of Viper so that
// embedding applications keep their own global Viper untouched.
package viper

import (
	"sync"

	spfviper "github.com/spf13/viper"
)

var (
	mu       sync.Mutex
	instance *spfviper.Viper
)

// Instance returns the module-local Viper, creating it on first use.
func Instance() *spfviper.Viper {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		instance = spfviper.New()
	}
	return instance
}

// Reset discards the module-local Viper so the next Instance call
// starts from a clean configuration. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
}
