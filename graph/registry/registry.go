// Package registry enumerates the socket data types a shader graph node
// can carry and the pairwise compatibility rule that governs wire
// legality. It is pure data plus one predicate — nothing here depends on
// the graph kernel, so the kernel can depend on it instead.
package registry

// SocketTypeId names a socket's data type. The set is closed: extending it
// means adding a constant and updating the compatibility table below, not
// opening the type up to arbitrary strings.
type SocketTypeId string

// The fixed set of socket data types.
const (
	Float     SocketTypeId = "float"
	Int       SocketTypeId = "int"
	Bool      SocketTypeId = "bool"
	Vec2      SocketTypeId = "vec2"
	Vec3      SocketTypeId = "vec3"
	Vec4      SocketTypeId = "vec4"
	Mat3      SocketTypeId = "mat3"
	Mat4      SocketTypeId = "mat4"
	Sampler2D SocketTypeId = "sampler2D"
	Color     SocketTypeId = "color"
	Texture   SocketTypeId = "texture"
)

// allTypes lists every known SocketTypeId, used for validation and for
// iterating the registry deterministically in tests.
var allTypes = []SocketTypeId{Float, Int, Bool, Vec2, Vec3, Vec4, Mat3, Mat4, Sampler2D, Color, Texture}

// AllTypes returns the closed set of socket type ids, in declaration
// order.
func AllTypes() []SocketTypeId {
	out := make([]SocketTypeId, len(allTypes))
	copy(out, allTypes)
	return out
}

// IsKnown reports whether t is one of the registry's declared types.
func IsKnown(t SocketTypeId) bool {
	for _, known := range allTypes {
		if known == t {
			return true
		}
	}
	return false
}

// broadcasts records the allowed *asymmetric* numeric broadcast pairs:
// a wire may carry a narrower type into a wider socket, but not the
// reverse. The relation is intentionally a directed table, never derived
// from a symmetric one — compatibility is not assumed to be its own
// inverse (Open Question (a) in the spec).
var broadcasts = map[SocketTypeId]map[SocketTypeId]bool{
	Float: {
		Vec2: true,
		Vec3: true,
		Vec4: true,
	},
	Int: {
		Float: true,
	},
}

// IsCompatible reports whether a wire may carry a value of type from into
// a socket of type to.
//
// The relation is reflexive (every type is compatible with itself) but is
// not required to be symmetric: float → vec3 broadcast is permitted while
// vec3 → float is not, because narrowing a vector to a scalar loses
// information a reader of the wire can't recover from the type alone.
// Consult this function rather than assuming either direction.
func IsCompatible(from, to SocketTypeId) bool {
	if from == to {
		return true
	}
	if allowed, ok := broadcasts[from]; ok {
		return allowed[to]
	}
	return false
}
