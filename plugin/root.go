// Package plugin resolves requested interfaces to loaded plugin instances.
//
// A Root holds registered plugin specs. Import finds the single plugin that
// provides a view, loads it at most once and casts the instance with
// dyncast.CastRef. Loading may block; the cast itself never does.
package plugin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/singleflight"

	"dyncast-generator/dyncast"
	"dyncast-generator/internal/common"
	"dyncast-generator/view"
)

var log = commonlog.GetLogger("dyncast.plugin")

// LoadFunc creates a plugin instance. It may import other plugins through
// root, passing ctx along so cycles are detected.
type LoadFunc func(ctx context.Context, root *Root) (dyncast.Castable, error)

// Spec describes a plugin.
type Spec struct {
	Name     string
	Provides []view.ID
	Load     LoadFunc
}

// provides reports whether s declares a view satisfying id. A declared view
// with more markers also satisfies a request for fewer.
func (s *Spec) provides(id view.ID) bool {
	for _, p := range s.Provides {
		if p.Type == id.Type && p.Markers.Contains(id.Markers) {
			return true
		}
	}

	return false
}

// Instance is a loaded plugin.
type Instance struct {
	ID    uuid.UUID
	Name  string
	Value dyncast.Castable
}

// Root is a plugin registry. It is safe for concurrent use.
type Root struct {
	mu        sync.RWMutex
	specs     []*Spec
	instances map[string]*Instance
	order     []string
	closed    bool

	// waits maps a loading plugin to the plugins its load is waiting for.
	waits map[string]map[string]int

	loads singleflight.Group
}

// NewRoot creates an empty registry.
func NewRoot() *Root {
	return &Root{
		instances: map[string]*Instance{},
		waits:     map[string]map[string]int{},
	}
}

// Register adds a plugin.
func (r *Root) Register(s Spec) error {
	switch {
	case s.Name == "":
		return errors.New("plugin: spec without a name")
	case s.Load == nil:
		return fmt.Errorf("plugin %s: no load function", s.Name)
	case len(s.Provides) == 0:
		return fmt.Errorf("plugin %s: provides no views", s.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	for _, have := range r.specs {
		if have.Name == s.Name {
			return fmt.Errorf("%w: %s", ErrDuplicate, s.Name)
		}
	}

	s.Provides = slices.Clone(s.Provides)
	r.specs = append(r.specs, &s)
	log.Debugf("registered %s", s.Name)

	return nil
}

// Import returns the instance of the plugin providing M, loading it first if
// needed. Cancelling ctx stops the wait, not the load.
func Import[M any](ctx context.Context, r *Root, markers ...view.Marker) (M, error) {
	var zero M

	id := view.Of[M](markers...)

	spec, err := r.provider(id)
	if err != nil {
		return zero, err
	}

	inst, err := r.instance(ctx, spec)
	if err != nil {
		return zero, err
	}

	v, ok := dyncast.CastRef[M](inst.Value, markers...)
	if !ok {
		return zero, fmt.Errorf("%w: %s does not cast to %s", ErrProviderMismatch, spec.Name, id)
	}

	return v, nil
}

func (r *Root) provider(id view.ID) (*Spec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, ErrClosed
	}

	var found []*Spec
	for _, s := range r.specs {
		if s.provides(id) {
			found = append(found, s)
		}
	}

	switch {
	case common.IsEmpty(found):
		return nil, fmt.Errorf("%w for %s", ErrNotFound, id)
	case common.IsSingle(found):
		return found[0], nil
	}

	names := make([]string, len(found))
	for i, s := range found {
		names[i] = s.Name
	}

	return nil, fmt.Errorf("%w for %s: %s", ErrAmbiguous, id, strings.Join(names, ", "))
}

func (r *Root) instance(ctx context.Context, spec *Spec) (*Instance, error) {
	r.mu.RLock()
	inst, ok := r.instances[spec.Name]
	r.mu.RUnlock()

	if ok {
		return inst, nil
	}

	chain := loadChain(ctx)
	if slices.Contains(chain, spec.Name) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrCycle, strings.Join(chain, " -> "), spec.Name)
	}

	if len(chain) > 0 {
		done, err := r.await(chain[len(chain)-1], spec.Name)
		if err != nil {
			return nil, err
		}

		defer done()
	}

	loadCtx := context.WithoutCancel(withLoad(ctx, spec.Name))
	ch := r.loads.DoChan(spec.Name, func() (any, error) {
		return r.load(loadCtx, spec)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		return res.Val.(*Instance), nil
	}
}

// await records that the load of waiter waits for target. Loads started by
// separate imports can wait on each other; await fails when target is
// already waiting, directly or not, for waiter.
func (r *Root) await(waiter, target string) (func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if path := r.waitPath(target, waiter, map[string]bool{}); path != nil {
		return nil, fmt.Errorf("%w: %s -> %s", ErrCycle, waiter, strings.Join(path, " -> "))
	}

	if r.waits[waiter] == nil {
		r.waits[waiter] = map[string]int{}
	}
	r.waits[waiter][target]++

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		if r.waits[waiter][target]--; r.waits[waiter][target] == 0 {
			delete(r.waits[waiter], target)
		}

		if len(r.waits[waiter]) == 0 {
			delete(r.waits, waiter)
		}
	}, nil
}

// waitPath returns the wait edges leading from one load to another, or nil.
func (r *Root) waitPath(from, to string, seen map[string]bool) []string {
	if from == to {
		return []string{to}
	}

	if seen[from] {
		return nil
	}

	seen[from] = true

	for next := range r.waits[from] {
		if path := r.waitPath(next, to, seen); path != nil {
			return append([]string{from}, path...)
		}
	}

	return nil
}

// load runs spec's loader and records the instance. Failed loads are not
// recorded, so a later import retries.
func (r *Root) load(ctx context.Context, spec *Spec) (*Instance, error) {
	r.mu.RLock()
	inst, ok := r.instances[spec.Name]
	r.mu.RUnlock()

	if ok {
		return inst, nil
	}

	log.Debugf("loading %s", spec.Name)

	v, err := spec.Load(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", spec.Name, err)
	}

	if v == nil {
		return nil, fmt.Errorf("%w: %s loaded nil", ErrProviderMismatch, spec.Name)
	}

	for _, id := range spec.Provides {
		if !v.CanCast(id) {
			return nil, fmt.Errorf("%w: %s does not cast to %s", ErrProviderMismatch, spec.Name, id)
		}
	}

	inst = &Instance{ID: uuid.New(), Name: spec.Name, Value: v}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		closeValue(inst)
		return nil, ErrClosed
	}

	r.instances[spec.Name] = inst
	r.order = append(r.order, spec.Name)
	log.Infof("loaded %s as %s", spec.Name, inst.ID)

	return inst, nil
}

// Loaded returns the loaded instances in load order.
func (r *Root) Loaded() []Instance {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Instance, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, *r.instances[name])
	}

	return out
}

// Close closes every loaded instance that implements io.Closer, newest
// first. The root accepts no further registrations or imports.
func (r *Root) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}

	r.closed = true

	var errs []error
	for i := len(r.order) - 1; i >= 0; i-- {
		inst := r.instances[r.order[i]]
		if err := closeValue(inst); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", inst.Name, err))
		}
	}

	r.instances = map[string]*Instance{}
	r.order = nil

	return errors.Join(errs...)
}

func closeValue(inst *Instance) error {
	c, ok := inst.Value.(io.Closer)
	if !ok {
		return nil
	}

	log.Debugf("closing %s", inst.Name)

	return c.Close()
}

type chainKey struct{}

func loadChain(ctx context.Context) []string {
	chain, _ := ctx.Value(chainKey{}).([]string)
	return chain
}

func withLoad(ctx context.Context, name string) context.Context {
	chain := loadChain(ctx)
	return context.WithValue(ctx, chainKey{}, append(slices.Clip(chain), name))
}
