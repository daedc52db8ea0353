package council

import "github.com/ethereum/go-ethereum/common"

// GovernorSeat holds the optional governor identity
type GovernorSeat struct {
	holder   common.Address
	occupied bool
}

// Get returns the governor and whether the seat is occupied
func (g *GovernorSeat) Get() (common.Address, bool) {
	return g.holder, g.occupied
}

// Is reports whether addr currently holds the seat
func (g *GovernorSeat) Is(addr common.Address) bool {
	return g.occupied && g.holder == addr
}

func (g *GovernorSeat) Set(addr common.Address) {
	g.holder = addr
	g.occupied = true
}

func (g *GovernorSeat) Vacate() {
	g.holder = common.Address{}
	g.occupied = false
}
