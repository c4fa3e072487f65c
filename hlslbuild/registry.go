package hlslbuild

import (
	"encoding/binary"
	"io"
)

// Registry is a deduplicating store of function definitions keyed by a
// stable identity: the resolved include path for file definitions, the
// function name for inline definitions. At most one definition is written
// per identity no matter how many call sites reference it.
//
// A Registry belongs to a single generation pass and is not safe for
// concurrent use; parallel traversals must serialize Provide calls.
type Registry struct {
	order  []string
	hashes map[string]uint64
	buf    []byte
	// scratch holds candidate content while checking a repeated identity
	// for divergence.
	scratch []byte
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{hashes: make(map[string]uint64)}
}

// Reset clears registered content so the registry can back a new pass.
func (r *Registry) Reset() {
	r.order = r.order[:0]
	r.buf = r.buf[:0]
	if r.hashes == nil {
		r.hashes = make(map[string]uint64)
	}
	clear(r.hashes)
}

// Len returns the number of registered identities.
func (r *Registry) Len() int { return len(r.order) }

// Has reports whether the identity already has a definition.
func (r *Registry) Has(identity string) bool {
	_, ok := r.hashes[identity]
	return ok
}

// Provide registers the content produced by writer under the identity.
// The first call for an identity appends the content to the registry and
// returns written=true. Later calls with identical content are silent
// no-ops. A later call producing different content keeps the first
// definition and returns an ErrDuplicateFunction fault so the caller can
// surface the collision.
func (r *Registry) Provide(identity string, writer func(dst []byte) []byte) (written bool, err error) {
	if r.hashes == nil {
		r.hashes = make(map[string]uint64)
	}
	idHash := hash([]byte(identity), 0)
	if prevHash, exists := r.hashes[identity]; exists {
		r.scratch = writer(r.scratch[:0])
		if hash(r.scratch, idHash) == prevHash {
			return false, nil
		}
		return false, newError(ErrDuplicateFunction,
			"identity %q already registered with different content", identity)
	}
	start := len(r.buf)
	r.buf = writer(r.buf)
	r.hashes[identity] = hash(r.buf[start:], idHash)
	r.order = append(r.order, identity)
	return true, nil
}

// WriteTo writes all registered definitions in registration order.
func (r *Registry) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.buf)
	return int64(n), err
}

// Bytes returns the registered definitions in registration order.
// The returned slice is owned by the registry.
func (r *Registry) Bytes() []byte { return r.buf }

// Identities returns the registered identities in registration order.
func (r *Registry) Identities() []string { return r.order }

// hash mixes b into the running hash using splitmix-style finalization.
func hash(b []byte, in uint64) uint64 {
	x := in
	mix := func(word uint64) {
		x ^= word
		x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
		x = (x ^ (x >> 27)) * 0x94d049bb133111eb
		x ^= x >> 31
	}
	for len(b) >= 8 {
		mix(binary.LittleEndian.Uint64(b))
		b = b[8:]
	}
	if len(b) > 0 {
		var buf [8]byte
		copy(buf[:], b)
		mix(binary.LittleEndian.Uint64(buf[:]))
	}
	return x
}
