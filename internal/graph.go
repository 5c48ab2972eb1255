package internal

import (
	"cmp"
	"slices"
	"sync"
)

type Kind int

const (
	KindInput Kind = iota
	KindCompute
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindCompute:
		return "compute"
	default:
		return "unknown"
	}
}

// Ref references a node of a given kind. A Ref whose id names a node of the other kind does not resolve.
type Ref struct {
	Kind Kind
	ID   ID
}

// Propagation summarizes a single write.
type Propagation struct {
	Clock      int
	Affected   int
	Recomputed int
	Changed    int
	Notified   int
}

// Graph owns every node, the dependency index and the callback registries.
// Every method holds the graph lock for its whole duration.
type Graph struct {
	mu sync.Mutex

	lastID ID

	inputs   map[ID]*Input
	computes map[ID]*Compute

	heap      *PriorityHeap
	queue     *NotifyQueue
	scheduler *Scheduler
}

func NewGraph() *Graph {
	return &Graph{
		inputs:    make(map[ID]*Input),
		computes:  make(map[ID]*Compute),
		heap:      NewHeap(),
		queue:     NewNotifyQueue(),
		scheduler: NewScheduler(),
	}
}

func (g *Graph) lock() {
	if g.scheduler.RunningOn(getGID()) {
		panic(ErrReentrant)
	}

	g.mu.Lock()
}

func (g *Graph) unlock() {
	g.mu.Unlock()
}

func (g *Graph) nextID() ID {
	g.lastID++
	return g.lastID
}

func (g *Graph) NewInput(initial any) ID {
	g.lock()
	defer g.unlock()

	in := &Input{
		Node: &Node{id: g.nextID(), value: initial},
	}
	g.inputs[in.id] = in

	return in.id
}

// NewCompute creates a compute node over the given dependencies, seeded with fn applied to their current values.
// On a missing dependency nothing is created and a *MissingRefError is returned.
func (g *Graph) NewCompute(deps []Ref, fn ComputeFunc) (ID, error) {
	g.lock()
	defer g.unlock()

	nodes := make([]*Node, len(deps))
	for i, ref := range deps {
		node, ok := g.lookup(ref)
		if !ok {
			return 0, &MissingRefError{Ref: ref}
		}
		nodes[i] = node
	}

	c := &Compute{
		deps:    nodes,
		compute: fn,
	}
	value := c.run()

	c.Node = &Node{
		id:     g.nextID(),
		height: maxDepHeight(nodes),
		value:  value,
	}
	g.computes[c.id] = c

	for _, dep := range nodes {
		// a cell listed twice is still a single dependent
		if n := len(dep.subs); n > 0 && dep.subs[n-1] == c {
			continue
		}
		dep.addSub(c)
	}

	return c.id, nil
}

func (g *Graph) lookup(ref Ref) (*Node, bool) {
	switch ref.Kind {
	case KindInput:
		if in, ok := g.inputs[ref.ID]; ok {
			return in.Node, true
		}
	case KindCompute:
		if c, ok := g.computes[ref.ID]; ok {
			return c.Node, true
		}
	}

	return nil, false
}

func (g *Graph) Value(ref Ref) (any, bool) {
	g.lock()
	defer g.unlock()

	node, ok := g.lookup(ref)
	if !ok {
		return nil, false
	}

	return node.value, true
}

// Dependents returns the direct dependents of a node in creation order.
func (g *Graph) Dependents(ref Ref) ([]ID, bool) {
	g.lock()
	defer g.unlock()

	node, ok := g.lookup(ref)
	if !ok {
		return nil, false
	}

	ids := make([]ID, len(node.subs))
	for i, sub := range node.subs {
		ids[i] = sub.id
	}

	return ids, true
}

// Len returns the number of input and compute nodes.
func (g *Graph) Len() (inputs, computes int) {
	g.lock()
	defer g.unlock()

	return len(g.inputs), len(g.computes)
}

// Write sets an input value and propagates it. It reports false, changing nothing, if the input does not exist.
func (g *Graph) Write(id ID, value any) (Propagation, bool) {
	return g.WriteAll(map[ID]any{id: value})
}

// WriteAll sets several input values and propagates them as one write:
// each affected node is recomputed once and each changed node notifies its callbacks once.
// It reports false, changing nothing, if any input does not exist.
func (g *Graph) WriteAll(values map[ID]any) (Propagation, bool) {
	g.lock()
	defer g.unlock()

	inputs := make([]*Input, 0, len(values))
	for id := range values {
		in, ok := g.inputs[id]
		if !ok {
			return Propagation{}, false
		}
		inputs = append(inputs, in)
	}
	slices.SortFunc(inputs, func(a, b *Input) int { return cmp.Compare(a.id, b.id) })

	var p Propagation
	g.scheduler.Run(func() {
		affected := g.collect(inputs)
		defer g.settle(affected)

		for _, in := range inputs {
			in.value = values[in.id]
		}

		g.heap.InsertAll(affected)
		g.heap.Drain(func(c *Compute) {
			g.recompute(c)
			p.Recomputed++
		})

		p.Clock = g.scheduler.Time()
		p.Affected = len(affected)
		p.Changed = g.queue.Len()
		p.Notified = g.queue.Run()
	})

	return p, true
}

// collect returns every compute node reachable from the given inputs, breadth first,
// recording each one's pre-write value.
func (g *Graph) collect(inputs []*Input) []*Compute {
	affected := make([]*Compute, 0)

	visit := func(subs []*Compute) {
		for _, sub := range subs {
			if sub.HasFlag(FlagAffected) {
				continue
			}
			sub.AddFlag(FlagAffected)
			sub.prevValue = sub.value
			affected = append(affected, sub)
		}
	}

	for _, in := range inputs {
		visit(in.subs)
	}
	for i := 0; i < len(affected); i++ {
		visit(affected[i].subs)
	}

	return affected
}

func (g *Graph) recompute(c *Compute) {
	c.value = c.run()

	if !isEqual(c.prevValue, c.value) {
		c.AddFlag(FlagChanged)
		g.queue.Enqueue(c)
	}
}

// settle resets the propagation state of the affected nodes, including after a panicking compute function or callback.
func (g *Graph) settle(affected []*Compute) {
	for _, c := range affected {
		g.heap.Remove(c)
		c.RemoveFlag(FlagAffected | FlagChanged)
		c.prevValue = nil
	}
	g.queue.Clear()
}

func (g *Graph) AddCallback(id ID, fn Callback) (CallbackID, bool) {
	g.lock()
	defer g.unlock()

	c, ok := g.computes[id]
	if !ok {
		return 0, false
	}

	if c.callbacks == nil {
		c.callbacks = NewCallbackRegistry()
	}

	return c.callbacks.Add(fn), true
}

func (g *Graph) RemoveCallback(id ID, cb CallbackID) error {
	g.lock()
	defer g.unlock()

	c, ok := g.computes[id]
	if !ok {
		return ErrNonexistentCell
	}

	if c.callbacks == nil || !c.callbacks.Remove(cb) {
		return ErrNonexistentCallback
	}

	return nil
}
