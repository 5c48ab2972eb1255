package cells

import (
	"errors"

	"github.com/go-logr/logr"

	"github.com/AnatoleLucet/cells/internal"
)

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// CellID references any cell of a Reactor. It is implemented by InputCellID and ComputeCellID only.
type CellID interface {
	ref() internal.Ref
}

// InputCellID identifies an input cell.
type InputCellID struct{ id internal.ID }

func (c InputCellID) ref() internal.Ref { return internal.Ref{Kind: internal.KindInput, ID: c.id} }

// ComputeCellID identifies a compute cell.
type ComputeCellID struct{ id internal.ID }

func (c ComputeCellID) ref() internal.Ref { return internal.Ref{Kind: internal.KindCompute, ID: c.id} }

// CallbackID identifies a callback within the compute cell it was added to.
type CallbackID struct{ id internal.CallbackID }

func cellID(ref internal.Ref) CellID {
	if ref.Kind == internal.KindInput {
		return InputCellID{ref.ID}
	}

	return ComputeCellID{ref.ID}
}

// Reactor is a graph of input cells and compute cells derived from them.
// Writing an input recomputes every cell depending on it, in dependency order,
// and notifies the callbacks of each cell whose value changed.
//
// All methods are safe to call from several goroutines; each one holds the reactor
// for its whole duration. Callbacks must not call back into the reactor they were
// added to; doing so panics with ErrReentrantCall.
type Reactor[T comparable] struct {
	graph *internal.Graph

	log     logr.Logger
	metrics *metrics
}

// New creates an empty reactor.
func New[T comparable](opts ...Option) *Reactor[T] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Reactor[T]{
		graph:   internal.NewGraph(),
		log:     cfg.logger.WithName("reactor"),
		metrics: newMetrics(cfg),
	}
}

// CreateInput creates an input cell holding the initial value.
func (r *Reactor[T]) CreateInput(initial T) InputCellID {
	id := InputCellID{r.graph.NewInput(initial)}

	r.log.V(1).Info("Created input cell", "id", id.id)
	r.metrics.cellCreated(internal.KindInput)

	return id
}

// CreateCompute creates a compute cell whose value is fn applied to the values of deps, in order.
// fn must be a pure function of its arguments.
//
// If a dependency does not exist, no cell is created and a *MissingDependencyError naming it is returned.
func (r *Reactor[T]) CreateCompute(deps []CellID, fn func([]T) T) (ComputeCellID, error) {
	refs := make([]internal.Ref, len(deps))
	for i, dep := range deps {
		if dep == nil {
			return ComputeCellID{}, &MissingDependencyError{Cell: nil}
		}
		refs[i] = dep.ref()
	}

	id, err := r.graph.NewCompute(refs, func(values []any) any {
		args := make([]T, len(values))
		for i, v := range values {
			args[i] = as[T](v)
		}

		return fn(args)
	})
	if err != nil {
		var missing *internal.MissingRefError
		if errors.As(err, &missing) {
			return ComputeCellID{}, &MissingDependencyError{Cell: cellID(missing.Ref)}
		}
		return ComputeCellID{}, err
	}

	r.log.V(1).Info("Created compute cell", "id", id, "dependencies", len(deps))
	r.metrics.cellCreated(internal.KindCompute)

	return ComputeCellID{id}, nil
}

// Value returns the current value of a cell, or false if the cell does not exist.
func (r *Reactor[T]) Value(id CellID) (T, bool) {
	if id == nil {
		var zero T
		return zero, false
	}

	v, ok := r.graph.Value(id.ref())
	if !ok {
		var zero T
		return zero, false
	}

	return as[T](v), true
}

// SetValue writes an input cell and propagates the change to its dependents.
// It returns false, and changes nothing, if the input cell does not exist.
func (r *Reactor[T]) SetValue(id InputCellID, value T) bool {
	p, ok := r.graph.Write(id.id, value)
	if !ok {
		r.log.V(1).Info("Ignored write to nonexistent input cell", "id", id.id)
		return false
	}

	r.propagated(p)
	return true
}

// SetValues writes several input cells as a single write: every dependent cell is
// recomputed once, and callbacks fire at most once per cell, comparing against the
// values held before the batch.
// It returns false, and changes nothing, if any input cell does not exist.
func (r *Reactor[T]) SetValues(values map[InputCellID]T) bool {
	writes := make(map[internal.ID]any, len(values))
	for id, v := range values {
		writes[id.id] = v
	}

	p, ok := r.graph.WriteAll(writes)
	if !ok {
		r.log.V(1).Info("Ignored batch containing a nonexistent input cell", "inputs", len(values))
		return false
	}

	r.propagated(p)
	return true
}

func (r *Reactor[T]) propagated(p internal.Propagation) {
	r.log.V(2).Info("Propagated write",
		"clock", p.Clock,
		"affected", p.Affected,
		"recomputed", p.Recomputed,
		"changed", p.Changed,
		"callbacks", p.Notified,
	)
	r.metrics.propagated(p)
}

// AddCallback registers fn to be called with the new value of a compute cell each time a write changes it.
// It returns false if the compute cell does not exist.
func (r *Reactor[T]) AddCallback(id ComputeCellID, fn func(T)) (CallbackID, bool) {
	cb, ok := r.graph.AddCallback(id.id, func(v any) { fn(as[T](v)) })
	if !ok {
		return CallbackID{}, false
	}

	r.log.V(1).Info("Added callback", "cell", id.id, "callback", cb)
	return CallbackID{cb}, true
}

// RemoveCallback removes a callback so it is never called again.
// It returns ErrNonexistentCell or ErrNonexistentCallback if either does not exist.
func (r *Reactor[T]) RemoveCallback(cell ComputeCellID, callback CallbackID) error {
	if err := r.graph.RemoveCallback(cell.id, callback.id); err != nil {
		return err
	}

	r.log.V(1).Info("Removed callback", "cell", cell.id, "callback", callback.id)
	return nil
}

// Dependents returns the compute cells directly depending on a cell, in creation order.
// It returns false if the cell does not exist.
func (r *Reactor[T]) Dependents(id CellID) ([]ComputeCellID, bool) {
	if id == nil {
		return nil, false
	}

	ids, ok := r.graph.Dependents(id.ref())
	if !ok {
		return nil, false
	}

	out := make([]ComputeCellID, len(ids))
	for i, sub := range ids {
		out[i] = ComputeCellID{sub}
	}

	return out, true
}

// Len returns the number of cells, inputs and computes alike.
func (r *Reactor[T]) Len() int {
	inputs, computes := r.graph.Len()
	return inputs + computes
}
