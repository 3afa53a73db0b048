package container

import (
	"fmt"
	"sort"
	"sync"

	"github.com/xy-planning-network/reqbody"
	"github.com/xy-planning-network/reqbody/parser"
)

//go:generate mockgen -destination=containertest/mock_resolver.go -package=containertest . Resolver

// A Resolver looks up components by identifier.
type Resolver interface {
	// Has reports whether a component is provided under id.
	Has(id string) bool

	// Get retrieves the component provided under id.
	// Get errors if id is not provided or the component cannot be constructed.
	Get(id string) (any, error)
}

// A Provider supplies the component for one identifier.
type Provider struct {
	id    string
	build func() (any, error)
}

// ID is the identifier p supplies.
func (p Provider) ID() string { return p.id }

// Instance provides v under id.
func Instance(id string, v any) Provider {
	return Provider{id: id, build: func() (any, error) { return v, nil }}
}

// Lazy provides the component fn constructs under id.
// fn runs at most once, on the first Get for id;
// its result, error included, is returned to every Get afterwards.
func Lazy(id string, fn func() (any, error)) Provider {
	var (
		once sync.Once
		v    any
		err  error
	)

	return Provider{id: id, build: func() (any, error) {
		once.Do(func() { v, err = fn() })
		return v, err
	}}
}

// A Container stores Providers and cannot be mutated outside of a constructor.
type Container struct {
	internal map[string]Provider
}

// New constructs a *Container from the given Providers.
// A later Provider replaces an earlier one for the same identifier.
// Providers with an empty identifier are skipped.
func New(providers ...Provider) *Container {
	c := &Container{internal: make(map[string]Provider, len(providers))}
	c.add(providers...)

	return c
}

// With constructs a new *Container from the parent
// and adds additional Providers to it.
// The parent is unchanged.
func With(parent *Container, additional ...Provider) *Container {
	c := &Container{internal: make(map[string]Provider, len(parent.internal)+len(additional))}
	for k, v := range parent.internal {
		c.internal[k] = v
	}

	c.add(additional...)

	return c
}

// Default constructs a *Container providing the parsers in package parser
// under parser.JSONID, parser.YAMLID and parser.FormID.
func Default() *Container {
	return New(
		Instance(parser.JSONID, parser.NewJSON()),
		Instance(parser.YAMLID, parser.NewYAML()),
		Instance(parser.FormID, parser.NewForm()),
	)
}

// Has reports whether a Provider is stored for id.
func (c *Container) Has(id string) bool {
	_, ok := c.internal[id]
	return ok
}

// Get builds the component for id.
func (c *Container) Get(id string) (any, error) {
	p, ok := c.internal[id]
	if !ok {
		return nil, fmt.Errorf("%w: no component provided as %q", reqbody.ErrNotExist, id)
	}

	v, err := p.build()
	if err != nil {
		return nil, fmt.Errorf("failed building %q: %w", id, err)
	}

	return v, nil
}

// IDs lists the stored identifiers in sorted order.
func (c *Container) IDs() []string {
	ids := make([]string, 0, len(c.internal))
	for id := range c.internal {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

func (c *Container) add(providers ...Provider) {
	for _, p := range providers {
		if p.id == "" || p.build == nil {
			continue
		}

		c.internal[p.id] = p
	}
}
