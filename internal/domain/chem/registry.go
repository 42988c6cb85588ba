package chem

import (
	"sync"

	"github.com/btjanaka/dance/pkg/errors"
)

// The registry lets a chemistry backend install itself from an init
// function, the same way database drivers register with database/sql.
// The batch commands look the backend up by name at startup.

var (
	registryMu sync.RWMutex
	engines    = make(map[string]Engine)
	readers    = make(map[string]Reader)
)

// RegisterEngine makes an Engine available under the given name.
// Registering twice under the same name panics.
func RegisterEngine(name string, e Engine) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if e == nil {
		panic("chem: RegisterEngine with nil engine")
	}
	if _, dup := engines[name]; dup {
		panic("chem: RegisterEngine called twice for engine " + name)
	}
	engines[name] = e
}

// RegisterReader makes a Reader available under the given name.
// Registering twice under the same name panics.
func RegisterReader(name string, r Reader) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if r == nil {
		panic("chem: RegisterReader with nil reader")
	}
	if _, dup := readers[name]; dup {
		panic("chem: RegisterReader called twice for reader " + name)
	}
	readers[name] = r
}

// LookupEngine returns the Engine registered under name.
func LookupEngine(name string) (Engine, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	e, ok := engines[name]
	if !ok {
		return nil, errors.NotFound("no chemistry engine registered as " + name)
	}
	return e, nil
}

// LookupReader returns the Reader registered under name.
func LookupReader(name string) (Reader, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	r, ok := readers[name]
	if !ok {
		return nil, errors.NotFound("no structure reader registered as " + name)
	}
	return r, nil
}
