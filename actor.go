package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrDestroyedActor reports an operation on an actor that is pending
	// destruction.
	ErrDestroyedActor = errors.New("engine: actor is pending destruction")
	// ErrDestroyedParent reports an attempt to attach under a parent that is
	// pending destruction.
	ErrDestroyedParent = errors.New("engine: parent is pending destruction")
	// ErrNilComponent reports an attempt to attach a nil component.
	ErrNilComponent = errors.New("engine: nil component")
	// ErrHierarchyCycle reports a reparenting that would make an actor its own
	// ancestor.
	ErrHierarchyCycle = errors.New("engine: reparenting would create a cycle")
)

// nextActorID is the process-wide actor identity sequence.
var nextActorID uint64

// ResetIDSequence resets the actor identity sequence. Tests use this to get
// deterministic IDs; persistent IDs are unaffected.
func ResetIDSequence() {
	nextActorID = 0
}

// Actor is a named node in the hierarchical scene structure. It owns an
// ordered list of components and a transform, and belongs to exactly one
// scene for its whole lifetime.
type Actor struct {
	// ID is the process-wide sequence number of the actor. It is unique
	// within a run but not stable across ResetIDSequence.
	ID uint64
	// PersistentID identifies the actor across save/reload cycles, where
	// sequence numbers are not stable.
	PersistentID uuid.UUID

	name           string
	layer          string
	scene          *Scene
	parent         *Actor
	children       []*Actor
	records        []*componentRecord
	transform      Transform
	visible        bool
	awoken         bool
	pendingDestroy bool
	destroyed      bool
}

// ActorOption customizes actor construction.
type ActorOption func(*actorOptions)

type actorOptions struct {
	parent  *Actor
	visible bool
	layer   string
}

// WithParent attaches the new actor under parent instead of at the tree root.
func WithParent(parent *Actor) ActorOption {
	return func(o *actorOptions) { o.parent = parent }
}

// WithVisible sets the initial visibility flag.
func WithVisible(visible bool) ActorOption {
	return func(o *actorOptions) { o.visible = visible }
}

// WithLayer tags the actor with a named layer.
func WithLayer(layer string) ActorOption {
	return func(o *actorOptions) { o.layer = layer }
}

// NewActor creates an actor named name inside scene and registers it into the
// scene's liveness and name indices. By default the actor is visible and sits
// at the tree root; use WithParent, WithVisible and WithLayer to override.
//
// Attaching under a parent that is pending destruction fails with
// ErrDestroyedParent.
func NewActor(scene *Scene, name string, opts ...ActorOption) (*Actor, error) {
	options := actorOptions{visible: true}
	for _, opt := range opts {
		opt(&options)
	}
	if options.parent != nil && options.parent.pendingDestroy {
		return nil, fmt.Errorf("%w: cannot attach %q under %q", ErrDestroyedParent, name, options.parent.name)
	}

	nextActorID++
	a := &Actor{
		ID:           nextActorID,
		PersistentID: uuid.New(),
		name:         name,
		layer:        options.layer,
		scene:        scene,
		visible:      options.visible,
	}
	a.transform = Transform{actor: a, orientation: IdentityQuaternion(), scale: UnitScale()}

	if options.parent != nil {
		a.parent = options.parent
		a.parent.children = append(a.parent.children, a)
		scene.tree.notifyAdded(a)
	} else {
		scene.tree.Add(a)
	}
	scene.registerActor(a)
	if scene.awoken {
		a.awoken = true
	}
	return a, nil
}

// Name returns the actor's name. Names are not required to be unique.
func (a *Actor) Name() string {
	return a.name
}

// Layer returns the actor's layer tag, or the empty string.
func (a *Actor) Layer() string {
	return a.layer
}

// Scene returns the scene the actor belongs to.
func (a *Actor) Scene() *Scene {
	return a.scene
}

// Parent returns the actor's parent, or nil at the tree root.
func (a *Actor) Parent() *Actor {
	return a.parent
}

// Children returns the actor's direct children in attachment order. The
// returned slice must not be mutated.
func (a *Actor) Children() []*Actor {
	return a.children
}

// Transform returns the actor's transform.
func (a *Actor) Transform() *Transform {
	return &a.transform
}

// Visible reports the actor's visibility flag.
func (a *Actor) Visible() bool {
	return a.visible
}

// SetVisible sets the actor's visibility flag.
func (a *Actor) SetVisible(visible bool) {
	a.visible = visible
}

// PendingDestruction reports whether the actor is flagged for teardown at the
// next end-of-frame flush.
func (a *Actor) PendingDestruction() bool {
	return a.pendingDestroy
}

// Awoken reports whether the actor has been through the scene's awake pass.
func (a *Actor) Awoken() bool {
	return a.awoken
}

// AddComponent attaches c to the actor. The component's lifecycle hooks are
// resolved once at this point: Awake runs immediately if the actor is already
// awoken, Start is queued for the next committed frame, and Update/FixedUpdate
// capabilities register the component into the per-frame schedule.
func (a *Actor) AddComponent(c Component) error {
	if c == nil {
		return ErrNilComponent
	}
	if a.pendingDestroy {
		return fmt.Errorf("%w: cannot attach %q component to %q", ErrDestroyedActor, c.Type(), a.name)
	}
	if binder, ok := c.(actorBinder); ok {
		binder.bindActor(a)
	}
	record := newComponentRecord(a, c)
	a.records = append(a.records, record)
	a.scene.enqueueStart(record)
	if a.awoken && record.caps&capAwake != 0 {
		c.(Awaker).Awake()
	}
	return nil
}

// MustAddComponent is AddComponent panicking on error, for wiring code where
// an attach failure is a caller bug.
func (a *Actor) MustAddComponent(c Component) {
	if err := a.AddComponent(c); err != nil {
		panic(err)
	}
}

// Component returns the first attached component of the given kind, skipping
// components pending destruction, or nil if there is none.
func (a *Actor) Component(kind ComponentType) Component {
	for _, r := range a.records {
		if !r.pendingDestroy && r.component.Type() == kind {
			return r.component
		}
	}
	return nil
}

// Components returns every attached component of the given kind, skipping
// components pending destruction.
func (a *Actor) Components(kind ComponentType) []Component {
	var out []Component
	for _, r := range a.records {
		if !r.pendingDestroy && r.component.Type() == kind {
			out = append(out, r.component)
		}
	}
	return out
}

// ComponentCount returns the number of attached components, including those
// pending destruction.
func (a *Actor) ComponentCount() int {
	return len(a.records)
}

// ComponentOf returns the first attached component of concrete type T,
// skipping components pending destruction.
func ComponentOf[T Component](a *Actor) (T, bool) {
	for _, r := range a.records {
		if r.pendingDestroy {
			continue
		}
		if c, ok := r.component.(T); ok {
			return c, true
		}
	}
	var zero T
	return zero, false
}

// ComponentsOf returns every attached component of concrete type T, skipping
// components pending destruction.
func ComponentsOf[T Component](a *Actor) []T {
	var out []T
	for _, r := range a.records {
		if r.pendingDestroy {
			continue
		}
		if c, ok := r.component.(T); ok {
			out = append(out, c)
		}
	}
	return out
}

// DestroyComponent flags c for destruction at the end of the frame. Calling
// it twice for the same component is a no-op, as is passing a component not
// attached to this actor.
func (a *Actor) DestroyComponent(c Component) {
	for _, r := range a.records {
		if r.component == c {
			if !r.pendingDestroy {
				r.pendingDestroy = true
				a.scene.enqueueDestroy(r)
			}
			return
		}
	}
}

// EnableComponentUpdates toggles per-frame scheduling for an attached
// component. A component only ever receives Update/FixedUpdate calls if it
// declares the capability; this switch suspends and resumes those calls.
func (a *Actor) EnableComponentUpdates(c Component, enabled bool) {
	for _, r := range a.records {
		if r.component == c {
			r.needsUpdate = enabled && r.caps&(capFixedUpdate|capUpdate) != 0
			return
		}
	}
}

// removeRecord drops a single component record from the attachment list.
func (a *Actor) removeRecord(record *componentRecord) {
	for i, r := range a.records {
		if r == record {
			a.records = append(a.records[:i], a.records[i+1:]...)
			return
		}
	}
}

// MarkDestructionPending flags the actor and every descendant for teardown at
// the end of the current frame. Physical removal happens once per actor, at
// end-of-frame, never immediately.
func (a *Actor) MarkDestructionPending() {
	a.pendingDestroy = true
	for _, child := range a.children {
		child.MarkDestructionPending()
	}
}

// SetParent moves the actor under newParent, or to the tree root when
// newParent is nil. It fails if the actor or the target parent is pending
// destruction, or if the move would make the actor its own ancestor.
//
// By default the actor's world transform is preserved across the move; with
// keepLocal the local transform values are kept instead, so the world
// placement may jump.
func (a *Actor) SetParent(newParent *Actor, keepLocal bool) error {
	if a.pendingDestroy {
		return fmt.Errorf("%w: cannot reparent %q", ErrDestroyedActor, a.name)
	}
	if newParent != nil && newParent.pendingDestroy {
		return fmt.Errorf("%w: cannot reparent %q under %q", ErrDestroyedParent, a.name, newParent.name)
	}
	for p := newParent; p != nil; p = p.parent {
		if p == a {
			return fmt.Errorf("%w: cannot reparent %q under %q", ErrHierarchyCycle, a.name, newParent.name)
		}
	}

	var worldPosition Vector3
	var worldOrientation Quaternion
	var worldScale Vector3
	if !keepLocal {
		worldPosition = a.transform.WorldPosition()
		worldOrientation = a.transform.WorldOrientation()
		worldScale = a.transform.WorldScale()
	}

	a.detach()
	if newParent != nil {
		a.parent = newParent
		newParent.children = append(newParent.children, a)
	} else {
		a.scene.tree.addRoot(a)
	}

	if !keepLocal {
		a.transform.SetWorldPosition(worldPosition)
		a.transform.SetWorldOrientation(worldOrientation)
		a.transform.SetWorldScale(worldScale)
	}
	return nil
}

// detach unlinks the actor from its parent or from the tree root list,
// without firing membership hooks.
func (a *Actor) detach() {
	if a.parent != nil {
		a.parent.removeChild(a)
		a.parent = nil
		return
	}
	a.scene.tree.removeRoot(a)
}

func (a *Actor) removeChild(child *Actor) {
	for i, c := range a.children {
		if c == child {
			a.children = append(a.children[:i], a.children[i+1:]...)
			return
		}
	}
}

// destroy performs the physical teardown of one actor: components in reverse
// attachment order, tree detachment, render-side node disposal, children list
// cleared. The scene calls it at end-of-frame, children before parents.
func (a *Actor) destroy() {
	if a.destroyed {
		return
	}
	a.destroyed = true
	a.pendingDestroy = true
	for i := len(a.records) - 1; i >= 0; i-- {
		a.records[i].teardown()
	}
	a.records = nil
	a.detach()
	a.scene.tree.notifyRemoved(a)
	a.children = nil
}
