// Package engine implements the entity/component runtime at the core of the
// JollyPixel tooling: a hierarchical actor tree, a component lifecycle
// contract, a per-frame scene orchestrator and a fixed-timestep scheduler
// decoupling simulation rate from display rate.
package engine

import "reflect"

// ComponentType tags a component with its kind. The set is open: the engine
// ships a handful of built-in kinds and user code declares its own.
type ComponentType string

// Built-in component kinds.
const (
	ComponentCamera         ComponentType = "Camera"
	ComponentModelRenderer  ComponentType = "ModelRenderer"
	ComponentSpriteRenderer ComponentType = "SpriteRenderer"
	ComponentAudioEmitter   ComponentType = "AudioEmitter"
	ComponentBehavior       ComponentType = "Behavior"
)

// Component is a unit of behavior or visual representation attached to
// exactly one actor. Beyond Type, all lifecycle hooks are optional: a
// component declares them by implementing the corresponding capability
// interface (Awaker, Starter, FixedUpdater, Updater, Destroyer).
type Component interface {
	Type() ComponentType
}

// Awaker is implemented by components that run a one-time hook when their
// actor becomes active in a connected scene.
type Awaker interface {
	Awake()
}

// Starter is implemented by components that run a one-time hook on their
// first eligible frame, after their actor is part of a committed frame
// snapshot.
type Starter interface {
	Start()
}

// FixedUpdater is implemented by components that take part in the
// constant-rate simulation pass. FixedUpdate may run zero or several times
// per displayed frame.
type FixedUpdater interface {
	FixedUpdate(dt float64)
}

// Updater is implemented by components that take part in the once-per-frame
// variable-rate pass.
type Updater interface {
	Update(dt float64)
}

// Destroyer is implemented by components that release resources on teardown.
// Destroy runs exactly once, at the end of the frame in which the component
// or its actor was flagged for destruction.
type Destroyer interface {
	Destroy()
}

// actorBinder receives the owning actor at attachment time. Behavior
// implements it; components embedding Behavior get the back-reference for
// free.
type actorBinder interface {
	bindActor(*Actor)
}

// Behavior is the embeddable base for scripted components. It carries the
// non-owning back-reference to the owning actor and a default Type.
type Behavior struct {
	actor *Actor
}

func (b *Behavior) bindActor(a *Actor) {
	b.actor = a
}

// Actor returns the actor this component is attached to, or nil before
// attachment.
func (b *Behavior) Actor() *Actor {
	return b.actor
}

// Type returns ComponentBehavior. Components embedding Behavior override this
// to declare their own kind.
func (b *Behavior) Type() ComponentType {
	return ComponentBehavior
}

// capabilitySet records which optional lifecycle hooks a component type
// implements.
type capabilitySet uint8

const (
	capAwake capabilitySet = 1 << iota
	capStart
	capFixedUpdate
	capUpdate
	capDestroy
)

// capabilityRegistry caches the resolved capability set per concrete
// component type, so hooks are probed once at attachment instead of every
// frame.
var capabilityRegistry = make(map[reflect.Type]capabilitySet, 32)

// capabilitiesOf resolves (and caches) the capability set of a component.
func capabilitiesOf(c Component) capabilitySet {
	t := reflect.TypeOf(c)
	if caps, ok := capabilityRegistry[t]; ok {
		return caps
	}
	var caps capabilitySet
	if _, ok := c.(Awaker); ok {
		caps |= capAwake
	}
	if _, ok := c.(Starter); ok {
		caps |= capStart
	}
	if _, ok := c.(FixedUpdater); ok {
		caps |= capFixedUpdate
	}
	if _, ok := c.(Updater); ok {
		caps |= capUpdate
	}
	if _, ok := c.(Destroyer); ok {
		caps |= capDestroy
	}
	capabilityRegistry[t] = caps
	return caps
}

// componentRecord is the per-attachment bookkeeping for one component: the
// capability set resolved at attachment, the deferred-lifecycle flags and the
// pre-asserted hook interfaces used by the frame passes.
type componentRecord struct {
	component      Component
	actor          *Actor
	fixedUpdater   FixedUpdater // non-nil iff capFixedUpdate
	updater        Updater      // non-nil iff capUpdate
	caps           capabilitySet
	started        bool
	needsUpdate    bool
	pendingDestroy bool
	destroyed      bool
}

func newComponentRecord(a *Actor, c Component) *componentRecord {
	r := &componentRecord{
		component: c,
		actor:     a,
		caps:      capabilitiesOf(c),
	}
	if r.caps&capFixedUpdate != 0 {
		r.fixedUpdater = c.(FixedUpdater)
	}
	if r.caps&capUpdate != 0 {
		r.updater = c.(Updater)
	}
	r.needsUpdate = r.caps&(capFixedUpdate|capUpdate) != 0
	return r
}

// teardown runs the component's Destroy hook at most once.
func (r *componentRecord) teardown() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	r.pendingDestroy = true
	if r.caps&capDestroy != 0 {
		r.component.(Destroyer).Destroy()
	}
}
