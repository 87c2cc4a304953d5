package schema

import "sync"

// registry holds named TransformFuncs so a TransformSchema can be
// serialized as just its Name and re-hydrated on the receiving side by
// looking the functions up again.
var (
	registryMu sync.RWMutex
	registry   = map[string]TransformFuncs{}
)

// Register associates a name with a transform bijection. Evaluation-time
// construction of a TransformSchema with that name will resolve to these
// functions on any host that has called Register with the same name.
func Register(name string, funcs TransformFuncs) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = funcs
}

// Lookup resolves a previously Register-ed transform by name.
func Lookup(name string) (TransformFuncs, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}
