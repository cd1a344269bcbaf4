package engine

import (
	"iter"
	"strings"

	"github.com/gobwas/glob"
)

// recursiveSegment matches zero or more intermediate levels in a path
// pattern.
const recursiveSegment = "**"

// ActorTree is the hierarchical container of actors. It holds the ordered
// root-level actors; deeper levels live in the actors' own child lists.
//
// OnAdd and OnRemove, when set, fire for every actor entering or leaving the
// hierarchy. The game instance uses them to mirror membership into the render
// backend's scene graph.
type ActorTree struct {
	roots    []*Actor
	OnAdd    func(*Actor)
	OnRemove func(*Actor)
}

// NewActorTree creates an empty tree.
func NewActorTree() *ActorTree {
	return &ActorTree{}
}

// Len returns the number of root-level actors.
func (t *ActorTree) Len() int {
	return len(t.roots)
}

// Roots returns the root-level actors in order. The returned slice must not
// be mutated.
func (t *ActorTree) Roots() []*Actor {
	return t.roots
}

// Add appends an actor to the root-level sequence and fires the OnAdd hook.
func (t *ActorTree) Add(a *Actor) {
	t.roots = append(t.roots, a)
	t.notifyAdded(a)
}

// Remove removes an actor from the root-level sequence and fires the
// OnRemove hook. It is a no-op if the actor is not a direct child.
func (t *ActorTree) Remove(a *Actor) {
	for i, r := range t.roots {
		if r == a {
			t.roots = append(t.roots[:i], t.roots[i+1:]...)
			t.notifyRemoved(a)
			return
		}
	}
}

// addRoot appends to the root-level sequence without firing hooks; used when
// reparenting an actor that is already part of the hierarchy.
func (t *ActorTree) addRoot(a *Actor) {
	t.roots = append(t.roots, a)
}

// removeRoot removes from the root-level sequence without firing hooks.
func (t *ActorTree) removeRoot(a *Actor) {
	for i, r := range t.roots {
		if r == a {
			t.roots = append(t.roots[:i], t.roots[i+1:]...)
			return
		}
	}
}

func (t *ActorTree) notifyAdded(a *Actor) {
	if t.OnAdd != nil {
		t.OnAdd(a)
	}
}

func (t *ActorTree) notifyRemoved(a *Actor) {
	if t.OnRemove != nil {
		t.OnRemove(a)
	}
}

// Walk yields every actor in the tree depth-first, parents before children,
// paired with its parent (nil for roots). Actors pending destruction are
// included; callers filter as needed. The sequence restarts on every range.
func (t *ActorTree) Walk() iter.Seq2[*Actor, *Actor] {
	return func(yield func(*Actor, *Actor) bool) {
		for _, root := range t.roots {
			if !walkActor(root, nil, yield) {
				return
			}
		}
	}
}

// WalkFrom yields root and its whole subtree depth-first, parents before
// children.
func (t *ActorTree) WalkFrom(root *Actor) iter.Seq2[*Actor, *Actor] {
	return func(yield func(*Actor, *Actor) bool) {
		walkActor(root, root.parent, yield)
	}
}

func walkActor(a, parent *Actor, yield func(*Actor, *Actor) bool) bool {
	if !yield(a, parent) {
		return false
	}
	for _, child := range a.children {
		if !walkActor(child, a, yield) {
			return false
		}
	}
	return true
}

// GetActor returns the first actor matching name, or nil. Names containing
// '/' are resolved as paths: the first segment is found anywhere in the tree
// by depth-first walk, subsequent segments match direct children exactly.
// Actors pending destruction never match.
func (t *ActorTree) GetActor(name string) *Actor {
	if !strings.Contains(name, "/") {
		return t.findByName(name)
	}
	segments := strings.Split(name, "/")
	current := t.findByName(segments[0])
	for _, segment := range segments[1:] {
		if current == nil {
			return nil
		}
		current = childByName(current, segment)
	}
	return current
}

func (t *ActorTree) findByName(name string) *Actor {
	for a := range t.Walk() {
		if !a.pendingDestroy && a.name == name {
			return a
		}
	}
	return nil
}

func childByName(parent *Actor, name string) *Actor {
	for _, child := range parent.children {
		if !child.pendingDestroy && child.name == name {
			return child
		}
	}
	return nil
}

// GetActors returns a lazy, restartable sequence of every actor matching
// pattern. A pattern without '/' is a glob matched against every actor name
// in a depth-first walk. A pattern with '/' matches segment by segment
// against direct children; a "**" segment spans zero or more intermediate
// levels. Actors pending destruction never match. Segment matchers are
// compiled once per query and cached by segment string.
func (t *ActorTree) GetActors(pattern string) iter.Seq[*Actor] {
	segments := strings.Split(pattern, "/")
	return func(yield func(*Actor) bool) {
		matchers := make(map[string]glob.Glob, len(segments))
		if len(segments) == 1 {
			g := compileSegment(matchers, pattern)
			for a := range t.Walk() {
				if !a.pendingDestroy && g.Match(a.name) {
					if !yield(a) {
						return
					}
				}
			}
			return
		}
		matchSegments(t.roots, segments, matchers, yield)
	}
}

// matchSegments resolves pattern segments against the candidate actors at the
// current level. It returns false once the consumer stops the iteration.
func matchSegments(actors []*Actor, segments []string, matchers map[string]glob.Glob, yield func(*Actor) bool) bool {
	segment := segments[0]
	rest := segments[1:]

	if segment == recursiveSegment {
		if len(rest) == 0 {
			// Trailing "**": every descendant from here down.
			for _, a := range actors {
				if !yieldSubtree(a, yield) {
					return false
				}
			}
			return true
		}
		// Interior "**": resolve the next segment at any depth, including
		// zero intermediate levels.
		next := rest[0]
		after := rest[1:]
		g := compileSegment(matchers, next)
		return descendInto(actors, g, after, matchers, yield)
	}

	g := compileSegment(matchers, segment)
	for _, a := range actors {
		if a.pendingDestroy || !g.Match(a.name) {
			continue
		}
		if len(rest) == 0 {
			if !yield(a) {
				return false
			}
			continue
		}
		if !matchSegments(a.children, rest, matchers, yield) {
			return false
		}
	}
	return true
}

// descendInto applies g to every actor in the given subtrees (the candidates
// themselves and all their descendants) and continues resolution with the
// remaining segments on each match.
func descendInto(actors []*Actor, g glob.Glob, rest []string, matchers map[string]glob.Glob, yield func(*Actor) bool) bool {
	for _, a := range actors {
		if !a.pendingDestroy && g.Match(a.name) {
			if len(rest) == 0 {
				if !yield(a) {
					return false
				}
			} else if !matchSegments(a.children, rest, matchers, yield) {
				return false
			}
		}
		if !descendInto(a.children, g, rest, matchers, yield) {
			return false
		}
	}
	return true
}

// yieldSubtree yields a and all its descendants, skipping actors pending
// destruction (the flag cascades on mark, so a flagged actor has no live
// descendants in practice).
func yieldSubtree(a *Actor, yield func(*Actor) bool) bool {
	if !a.pendingDestroy {
		if !yield(a) {
			return false
		}
	}
	for _, child := range a.children {
		if !yieldSubtree(child, yield) {
			return false
		}
	}
	return true
}

// compileSegment compiles a glob segment through the per-query cache. A
// malformed segment matches nothing: lookups degrade to "not found" rather
// than failing.
func compileSegment(matchers map[string]glob.Glob, segment string) glob.Glob {
	if g, ok := matchers[segment]; ok {
		return g
	}
	g, err := glob.Compile(segment)
	if err != nil {
		g = matchNothing{}
	}
	matchers[segment] = g
	return g
}

// matchNothing is the glob used for malformed segments.
type matchNothing struct{}

func (matchNothing) Match(string) bool { return false }

// DestroyActor flags an actor and its whole subtree for destruction at the
// end of the current frame.
func (t *ActorTree) DestroyActor(a *Actor) {
	a.MarkDestructionPending()
}

// DestroyAllActors flags every actor in the tree for destruction at the end
// of the current frame.
func (t *ActorTree) DestroyAllActors() {
	for _, root := range t.roots {
		root.MarkDestructionPending()
	}
}
