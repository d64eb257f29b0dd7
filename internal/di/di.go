// Package di provides a small lazy dependency-injection container.
package di

import (
	"fmt"
	"sync"
)

// ServiceRegistry resolves services by name.
type ServiceRegistry interface {
	Get(name string) any
}

// Container registers eager values and lazy factories.
type Container interface {
	ServiceRegistry
	Register(name string, v any)
	AddFactory(name string, factory func(ServiceRegistry) any)
}

type container struct {
	mu        sync.Mutex
	values    map[string]any
	factories map[string]func(ServiceRegistry) any
	resolving map[string]bool
}

// NewContainer creates an empty container.
func NewContainer() Container {
	return &container{
		values:    make(map[string]any),
		factories: make(map[string]func(ServiceRegistry) any),
		resolving: make(map[string]bool),
	}
}

// Register stores an already-built value.
func (c *container) Register(name string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[name] = v
}

// AddFactory stores a factory that runs once, on first Get.
func (c *container) AddFactory(name string, factory func(ServiceRegistry) any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[name] = factory
}

// Get returns the named service, building it on first use.
// Panics on unknown names and on dependency cycles.
func (c *container) Get(name string) any {
	c.mu.Lock()
	if v, ok := c.values[name]; ok {
		c.mu.Unlock()
		return v
	}
	factory, ok := c.factories[name]
	if !ok {
		c.mu.Unlock()
		panic(fmt.Sprintf("di: service %q not registered", name))
	}
	if c.resolving[name] {
		c.mu.Unlock()
		panic(fmt.Sprintf("di: dependency cycle while resolving %q", name))
	}
	c.resolving[name] = true
	c.mu.Unlock()

	// Factories may call Get, so the lock is not held here.
	v := factory(c)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.resolving, name)
	if existing, ok := c.values[name]; ok {
		return existing
	}
	c.values[name] = v
	return v
}

// Token is a typed service key.
type Token[T any] struct {
	name string
}

// NewToken creates a typed token.
func NewToken[T any](name string) Token[T] {
	return Token[T]{name: name}
}

// Name returns the registry key.
func (t Token[T]) Name() string {
	return t.name
}

// RegisterToken registers a typed lazy factory.
func RegisterToken[T any](c Container, tok Token[T], factory func(ServiceRegistry) T) {
	c.AddFactory(tok.name, func(sr ServiceRegistry) any {
		return factory(sr)
	})
}

// GetToken resolves a typed service.
func GetToken[T any](sr ServiceRegistry, tok Token[T]) T {
	return sr.Get(tok.name).(T)
}
