package internal

import "iter"

type CallbackID uint64

// Callback is notified with the settled value of a changed compute node.
type Callback func(value any)

type callbackEntry struct {
	id CallbackID
	fn Callback
}

// CallbackRegistry holds the callbacks of one compute node in registration order.
// Ids start at 1 and are never reissued.
type CallbackRegistry struct {
	last    CallbackID
	entries []callbackEntry
}

func NewCallbackRegistry() *CallbackRegistry {
	return &CallbackRegistry{
		entries: make([]callbackEntry, 0),
	}
}

func (r *CallbackRegistry) Add(fn Callback) CallbackID {
	r.last++
	r.entries = append(r.entries, callbackEntry{id: r.last, fn: fn})

	return r.last
}

func (r *CallbackRegistry) Remove(id CallbackID) bool {
	for i, entry := range r.entries {
		if entry.id == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}

	return false
}

func (r *CallbackRegistry) Len() int {
	return len(r.entries)
}

// All returns an iterator over the registered callbacks in registration order.
func (r *CallbackRegistry) All() iter.Seq2[CallbackID, Callback] {
	return func(yield func(CallbackID, Callback) bool) {
		for _, entry := range r.entries {
			if !yield(entry.id, entry.fn) {
				return
			}
		}
	}
}
