package internal

// Flags represents the propagation state of a compute node
type Flags uint8

const (
	FlagNone     Flags = 0
	FlagAffected Flags = 1 << iota // Node is reachable from a written input
	FlagInHeap                     // Node is currently in the dirty heap
	FlagChanged                    // Node settled on a value different from its pre-write value
)

func (f Flags) Has(flag Flags) bool {
	return f&flag != 0
}

func (f *Flags) Set(flag Flags) {
	*f |= flag
}

func (f *Flags) Clear(flag Flags) {
	*f &^= flag
}
