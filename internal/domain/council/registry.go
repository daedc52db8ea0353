package council

import (
	"github.com/ethereum/go-ethereum/common"
)

// Position is a roster index that is explicitly present or absent, so that
// "not a member" never collides with "member at index 0".
type Position struct {
	index int
	ok    bool
}

// At returns a present position
func At(index int) Position {
	return Position{index: index, ok: true}
}

// Index returns the roster index and whether it is present
func (p Position) Index() (int, bool) {
	return p.index, p.ok
}

// Present reports whether the identity is on the roster
func (p Position) Present() bool {
	return p.ok
}

// Registry is the roster of representatives with an identity to position
// index. Every present index entry satisfies members[pos] == identity.
type Registry struct {
	members []common.Address
	index   map[common.Address]int
	count   int
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{index: make(map[common.Address]int)}
}

// Add appends addr to the roster. The caller must have checked that addr is
// not already present.
func (r *Registry) Add(addr common.Address) {
	r.index[addr] = len(r.members)
	r.members = append(r.members, addr)
	r.count++
}

// Remove deletes addr by moving the last member into its slot. It reports
// false when addr was not on the roster.
func (r *Registry) Remove(addr common.Address) bool {
	pos, ok := r.index[addr]
	if !ok {
		return false
	}
	last := len(r.members) - 1
	if pos != last {
		moved := r.members[last]
		r.members[pos] = moved
		r.index[moved] = pos
	}
	delete(r.index, addr)
	r.members[last] = common.Address{}
	r.members = r.members[:last]
	r.count--
	return true
}

// Contains reports whether addr is a representative
func (r *Registry) Contains(addr common.Address) bool {
	_, ok := r.index[addr]
	return ok
}

// PositionOf returns the roster position of addr
func (r *Registry) PositionOf(addr common.Address) Position {
	pos, ok := r.index[addr]
	if !ok {
		return Position{}
	}
	return At(pos)
}

// Count is the live member count
func (r *Registry) Count() int {
	return r.count
}

// Members returns the roster in position order
func (r *Registry) Members() []common.Address {
	out := make([]common.Address, len(r.members))
	copy(out, r.members)
	return out
}
