// Package remote implements a serializable expression algebra whose
// values are blueprints for computations that can be shipped across
// machines, persisted, replayed, and evaluated on any host.
package remote

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"go.flow.remotecore.io/remote/schema"
)

// Name is a process-unique variable identifier, as produced by a
// RemoteContext's fresh-name generator.
type Name string

// VariableStore is the minimal key-value contract a RemoteContext's
// binding map needs. InMemoryStore satisfies it directly; an orchestrator
// can satisfy it with a persistent store to carry bindings across
// restarts.
type VariableStore interface {
	Get(name Name) (schema.DynamicValue, bool, error)
	Set(name Name, value schema.DynamicValue) error
}

// InMemoryStore is a plain map-backed VariableStore, the core's default
// binding map.
type InMemoryStore struct {
	bindings map[Name]schema.DynamicValue
}

// NewInMemoryStore returns an empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{bindings: map[Name]schema.DynamicValue{}}
}

func (s *InMemoryStore) Get(name Name) (schema.DynamicValue, bool, error) {
	v, ok := s.bindings[name]
	return v, ok, nil
}

func (s *InMemoryStore) Set(name Name, value schema.DynamicValue) error {
	s.bindings[name] = value
	return nil
}

// RemoteContext is the per-evaluation variable-binding service: a mutable
// mapping from variable name to DynamicValue, plus a monotonic fresh-name
// generator. A single RemoteContext is owned by one evaluation at a time
// and is not required to be concurrency-safe. The fresh-name counter is
// nonetheless atomic and shared by every RemoteContext in the process, so
// no two contexts ever hand out the same name.
type RemoteContext struct {
	// ID identifies this context's run for diagnostics and for
	// correlating bindings in an externalized store. It plays no role
	// in the fresh-name sequence, which stays a monotonic counter.
	ID    uuid.UUID
	store VariableStore
	seq   *atomic.Uint64
}

// freshNameSeq is the process-wide counter behind every RemoteContext's
// FreshName.
var freshNameSeq atomic.Uint64

// NewRemoteContext returns an in-memory RemoteContext.
func NewRemoteContext() *RemoteContext {
	return &RemoteContext{ID: uuid.New(), store: NewInMemoryStore(), seq: &freshNameSeq}
}

// NewExternalizedRemoteContext returns a RemoteContext whose bindings are
// delegated to store, e.g. a persistent key-value service maintained by
// the workflow orchestrator.
func NewExternalizedRemoteContext(store VariableStore) *RemoteContext {
	return &RemoteContext{ID: uuid.New(), store: store, seq: &freshNameSeq}
}

// GetVariable looks up name. An absent name is not an error at this
// level; it is the evaluator's Variable case that turns a miss into an
// Unbound error.
func (c *RemoteContext) GetVariable(name Name) (schema.DynamicValue, bool, error) {
	return c.store.Get(name)
}

// SetVariable stores or overwrites name's binding.
func (c *RemoteContext) SetVariable(name Name, value schema.DynamicValue) error {
	return c.store.Set(name, value)
}

// FreshName returns a name unique within the process, rendered as
// "$v_<n>".
func (c *RemoteContext) FreshName() Name {
	n := c.seq.Add(1)
	return Name(fmt.Sprintf("$v_%d", n))
}
