package engine

import "slices"

// Scene owns the root actor tree and the process-wide registries of live
// actors, and drives the per-frame lifecycle: snapshot, deferred starts,
// fixed-rate passes, the variable-rate pass, then the deferred destruction
// flush.
//
// All mutation happens on the single logical thread driving Game.Tick;
// the registries have exactly one writer and no callback re-enters a frame
// phase, so no locking is needed.
type Scene struct {
	tree       *ActorTree
	actors     []*Actor // ordered live registry
	membership map[*Actor]struct{}
	byName     map[string][]*Actor

	// cached is the frame snapshot: the live registry as of BeginFrame,
	// owned by the scene for the duration of one frame. Actors created
	// mid-frame are registered but excluded from this frame's passes.
	cached []*Actor

	awaitingStart   []*componentRecord
	awaitingDestroy []*componentRecord

	awoken bool
}

// NewScene creates an empty scene with its own actor tree.
func NewScene() *Scene {
	return &Scene{
		tree:       NewActorTree(),
		membership: make(map[*Actor]struct{}),
		byName:     make(map[string][]*Actor),
	}
}

// Tree returns the scene's actor tree.
func (s *Scene) Tree() *ActorTree {
	return s.tree
}

// ActorCount returns the number of live registered actors.
func (s *Scene) ActorCount() int {
	return len(s.actors)
}

// Awoken reports whether the one-time awake pass has run.
func (s *Scene) Awoken() bool {
	return s.awoken
}

// registerActor adds an actor to the liveness registry and the name index.
// Duplicate names are supported.
func (s *Scene) registerActor(a *Actor) {
	s.actors = append(s.actors, a)
	s.membership[a] = struct{}{}
	s.byName[a.name] = append(s.byName[a.name], a)
}

// unregisterActor removes an actor from the liveness registry and the name
// index.
func (s *Scene) unregisterActor(a *Actor) {
	if _, ok := s.membership[a]; !ok {
		return
	}
	delete(s.membership, a)
	if i := slices.Index(s.actors, a); i >= 0 {
		s.actors = append(s.actors[:i], s.actors[i+1:]...)
	}
	named := s.byName[a.name]
	if i := slices.Index(named, a); i >= 0 {
		named = append(named[:i], named[i+1:]...)
	}
	if len(named) == 0 {
		delete(s.byName, a.name)
	} else {
		s.byName[a.name] = named
	}
}

// GetActor returns the first live actor with the given name that is not
// pending destruction, or nil.
func (s *Scene) GetActor(name string) *Actor {
	for _, a := range s.byName[name] {
		if !a.pendingDestroy {
			return a
		}
	}
	return nil
}

// Awake runs the one-time awake pass over every registered actor and its
// components. Actors and components added afterwards awake at creation or
// attachment time instead. Calling Awake twice is a no-op.
func (s *Scene) Awake() {
	if s.awoken {
		return
	}
	s.awoken = true
	snapshot := slices.Clone(s.actors)
	for _, a := range snapshot {
		a.awoken = true
		for _, r := range a.records {
			if !r.pendingDestroy && r.caps&capAwake != 0 {
				r.component.(Awaker).Awake()
			}
		}
	}
}

// enqueueStart queues a freshly attached component for its deferred Start.
func (s *Scene) enqueueStart(r *componentRecord) {
	s.awaitingStart = append(s.awaitingStart, r)
}

// enqueueDestroy queues a component whose destruction has been requested for
// the end-of-frame flush.
func (s *Scene) enqueueDestroy(r *componentRecord) {
	s.awaitingDestroy = append(s.awaitingDestroy, r)
}

// DestroyComponent flags a component for destruction at the end of the frame.
// It locates the owning actor through the component's back-reference; for
// components without one, use Actor.DestroyComponent. Double destruction is
// a no-op.
func (s *Scene) DestroyComponent(c Component) {
	holder, ok := c.(interface{ Actor() *Actor })
	if !ok || holder.Actor() == nil {
		return
	}
	holder.Actor().DestroyComponent(c)
}

// BeginFrame snapshots the live registry for this frame's passes and drains
// the awaiting-start queue: components whose actor is committed get their
// one-time Start, components on dying actors are dropped, the rest stay
// queued for a later frame.
func (s *Scene) BeginFrame() {
	s.cached = append(s.cached[:0], s.actors...)

	// Swap the queue out first: Start callbacks may attach new components,
	// which land in a fresh queue and start on a later frame.
	queue := s.awaitingStart
	s.awaitingStart = nil
	var remaining []*componentRecord
	for _, r := range queue {
		if r.pendingDestroy || r.actor.pendingDestroy || r.actor.destroyed {
			continue
		}
		if _, committed := s.membership[r.actor]; !committed {
			remaining = append(remaining, r)
			continue
		}
		if !r.started {
			r.started = true
			if r.caps&capStart != 0 {
				r.component.(Starter).Start()
			}
		}
	}
	s.awaitingStart = append(remaining, s.awaitingStart...)
}

// FixedUpdate runs one constant-rate simulation step over the frame
// snapshot. It may run zero or several times per displayed frame. Actors
// flagged for destruction mid-frame still complete the frame; teardown waits
// for EndFrame.
func (s *Scene) FixedUpdate(dt float64) {
	for _, a := range s.cached {
		for _, r := range a.records {
			if r.needsUpdate && !r.pendingDestroy && r.started && r.fixedUpdater != nil {
				r.fixedUpdater.FixedUpdate(dt)
			}
		}
	}
}

// Update runs the once-per-frame variable-rate pass over the frame snapshot.
// Actors flagged for destruction mid-frame still complete the frame.
func (s *Scene) Update(dt float64) {
	for _, a := range s.cached {
		for _, r := range a.records {
			if r.needsUpdate && !r.pendingDestroy && r.started && r.updater != nil {
				r.updater.Update(dt)
			}
		}
	}
}

// EndFrame flushes the deferred destruction queues: first individually
// destroyed components, then every snapshot actor flagged pending
// destruction, children before parents.
func (s *Scene) EndFrame() {
	if len(s.awaitingDestroy) > 0 {
		queue := s.awaitingDestroy
		s.awaitingDestroy = nil
		for _, r := range queue {
			r.teardown()
			r.actor.removeRecord(r)
		}
	}

	for _, a := range s.cached {
		if a.pendingDestroy && !a.destroyed {
			s.finalizeActor(a)
		}
	}
}

// finalizeActor physically destroys an actor subtree, children before the
// actor itself, and unregisters each destroyed actor from the indices.
func (s *Scene) finalizeActor(a *Actor) {
	for _, child := range slices.Clone(a.children) {
		s.finalizeActor(child)
	}
	a.destroy()
	s.unregisterActor(a)
}

// DestroyActor flags an actor and its subtree for destruction at the end of
// the current frame. Flagging an already-flagged actor is a no-op.
func (s *Scene) DestroyActor(a *Actor) {
	a.MarkDestructionPending()
}

// DestroyAllActors flags every actor in the scene for destruction at the end
// of the current frame.
func (s *Scene) DestroyAllActors() {
	s.tree.DestroyAllActors()
}
