package internal

// NotifyQueue collects the compute nodes whose value changed during a write.
// It is flushed once the heap is drained so callbacks only ever observe settled values.
type NotifyQueue struct {
	nodes []*Compute
}

func NewNotifyQueue() *NotifyQueue {
	return &NotifyQueue{
		nodes: make([]*Compute, 0),
	}
}

func (q *NotifyQueue) Enqueue(node *Compute) {
	q.nodes = append(q.nodes, node)
}

func (q *NotifyQueue) Len() int {
	return len(q.nodes)
}

// Run invokes every callback of every queued node, in queue order,
// and returns the number of callbacks invoked.
func (q *NotifyQueue) Run() int {
	nodes := q.nodes
	defer q.Clear()

	invoked := 0
	for _, node := range nodes {
		if node.callbacks == nil {
			continue
		}

		value := node.Value()
		for _, cb := range node.callbacks.All() {
			cb(value)
			invoked++
		}
	}

	return invoked
}

func (q *NotifyQueue) Clear() {
	clear(q.nodes)
	q.nodes = q.nodes[:0]
}
