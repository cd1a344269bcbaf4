package engine

// Vector3 is a 3D vector with float64 components.
type Vector3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Mul returns the component-wise product of v and o.
func (v Vector3) Mul(o Vector3) Vector3 {
	return Vector3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// Div returns the component-wise quotient of v and o.
func (v Vector3) Div(o Vector3) Vector3 {
	return Vector3{v.X / o.X, v.Y / o.Y, v.Z / o.Z}
}

// Scale returns v scaled by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// UnitScale is the all-ones vector, the identity scale.
func UnitScale() Vector3 {
	return Vector3{1, 1, 1}
}

// Quaternion represents a rotation. The zero value is not a valid rotation;
// use IdentityQuaternion for "no rotation".
type Quaternion struct {
	X, Y, Z, W float64
}

// IdentityQuaternion returns the identity rotation.
func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

// Mul returns the composed rotation q then o applied in o-then-q order,
// following the usual quaternion product q*o.
func (q Quaternion) Mul(o Quaternion) Quaternion {
	return Quaternion{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Conjugate returns the inverse rotation for unit quaternions.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Rotate applies the rotation to a vector.
func (q Quaternion) Rotate(v Vector3) Vector3 {
	// t = 2 * cross(q.xyz, v)
	tx := 2 * (q.Y*v.Z - q.Z*v.Y)
	ty := 2 * (q.Z*v.X - q.X*v.Z)
	tz := 2 * (q.X*v.Y - q.Y*v.X)
	// v' = v + w*t + cross(q.xyz, t)
	return Vector3{
		X: v.X + q.W*tx + q.Y*tz - q.Z*ty,
		Y: v.Y + q.W*ty + q.Z*tx - q.X*tz,
		Z: v.Z + q.W*tz + q.X*ty - q.Y*tx,
	}
}

// Transform holds an actor's local position, orientation and scale and
// composes world-space values through the actor's parent chain. It is the
// engine-side mirror of the render backend's node transform.
type Transform struct {
	actor       *Actor
	position    Vector3
	orientation Quaternion
	scale       Vector3
}

// LocalPosition returns the position relative to the parent.
func (t *Transform) LocalPosition() Vector3 {
	return t.position
}

// SetLocalPosition sets the position relative to the parent.
func (t *Transform) SetLocalPosition(p Vector3) {
	t.position = p
}

// LocalOrientation returns the orientation relative to the parent.
func (t *Transform) LocalOrientation() Quaternion {
	return t.orientation
}

// SetLocalOrientation sets the orientation relative to the parent.
func (t *Transform) SetLocalOrientation(q Quaternion) {
	t.orientation = q
}

// LocalScale returns the scale relative to the parent.
func (t *Transform) LocalScale() Vector3 {
	return t.scale
}

// SetLocalScale sets the scale relative to the parent.
func (t *Transform) SetLocalScale(s Vector3) {
	t.scale = s
}

// parent returns the transform of the owning actor's parent, or nil at a root.
func (t *Transform) parent() *Transform {
	if t.actor == nil || t.actor.parent == nil {
		return nil
	}
	return &t.actor.parent.transform
}

// WorldPosition returns the position in world space, composed through the
// parent chain.
func (t *Transform) WorldPosition() Vector3 {
	p := t.parent()
	if p == nil {
		return t.position
	}
	return p.WorldPosition().Add(p.WorldOrientation().Rotate(t.position.Mul(p.WorldScale())))
}

// WorldOrientation returns the orientation in world space.
func (t *Transform) WorldOrientation() Quaternion {
	p := t.parent()
	if p == nil {
		return t.orientation
	}
	return p.WorldOrientation().Mul(t.orientation)
}

// WorldScale returns the scale in world space.
func (t *Transform) WorldScale() Vector3 {
	p := t.parent()
	if p == nil {
		return t.scale
	}
	return p.WorldScale().Mul(t.scale)
}

// SetWorldPosition sets the local position so that the world-space position
// becomes p.
func (t *Transform) SetWorldPosition(p Vector3) {
	pt := t.parent()
	if pt == nil {
		t.position = p
		return
	}
	t.position = pt.WorldOrientation().Conjugate().Rotate(p.Sub(pt.WorldPosition())).Div(pt.WorldScale())
}

// SetWorldOrientation sets the local orientation so that the world-space
// orientation becomes q.
func (t *Transform) SetWorldOrientation(q Quaternion) {
	pt := t.parent()
	if pt == nil {
		t.orientation = q
		return
	}
	t.orientation = pt.WorldOrientation().Conjugate().Mul(q)
}

// SetWorldScale sets the local scale so that the world-space scale becomes s.
func (t *Transform) SetWorldScale(s Vector3) {
	pt := t.parent()
	if pt == nil {
		t.scale = s
		return
	}
	t.scale = s.Div(pt.WorldScale())
}
