package internal

// ID identifies a node. Inputs and computes share one namespace.
type ID uint64

// ComputeFunc maps the ordered dependency values to a new value.
type ComputeFunc func(values []any) any

type Node struct {
	id ID

	// the current height of the node in the dependency graph, 0 for inputs
	height int

	value any

	// direct dependents, in creation order
	subs []*Compute
}

func (n *Node) ID() ID { return n.id }
func (n *Node) Height() int { return n.height }
func (n *Node) Value() any { return n.value }

func (n *Node) addSub(c *Compute) {
	n.subs = append(n.subs, c)
}

type Input struct {
	*Node
}

type Compute struct {
	*Node

	flags Flags

	// value before the current write, valid while FlagAffected is set
	prevValue any

	deps    []*Node
	compute ComputeFunc

	callbacks *CallbackRegistry
}

func (c *Compute) HasFlag(flag Flags) bool { return c.flags.Has(flag) }
func (c *Compute) AddFlag(flag Flags) { c.flags.Set(flag) }
func (c *Compute) RemoveFlag(flag Flags) { c.flags.Clear(flag) }

// run evaluates the compute function against the current dependency values.
func (c *Compute) run() any {
	values := make([]any, len(c.deps))
	for i, dep := range c.deps {
		values[i] = dep.value
	}

	return c.compute(values)
}

// maxDepHeight returns the height a node with the given dependencies must sit at.
func maxDepHeight(deps []*Node) int {
	height := 0
	for _, dep := range deps {
		if dep.height >= height {
			height = dep.height + 1
		}
	}

	return height
}

func isEqual(a, b any) bool {
	return a == b
}
