package cells

import (
	"fmt"

	"github.com/AnatoleLucet/cells/internal"
)

var (
	// ErrNonexistentCell is returned by RemoveCallback when the compute cell does not exist.
	ErrNonexistentCell = internal.ErrNonexistentCell

	// ErrNonexistentCallback is returned by RemoveCallback when the compute cell exists
	// but holds no callback with the given id.
	ErrNonexistentCallback = internal.ErrNonexistentCallback

	// ErrReentrantCall is the panic value raised when a callback calls back into its reactor.
	ErrReentrantCall = internal.ErrReentrant
)

// MissingDependencyError is returned by CreateCompute when a dependency does not exist.
type MissingDependencyError struct {
	Cell CellID
}

func (e *MissingDependencyError) Error() string {
	switch id := e.Cell.(type) {
	case InputCellID:
		return fmt.Sprintf("missing dependency: input cell %d", id.id)
	case ComputeCellID:
		return fmt.Sprintf("missing dependency: compute cell %d", id.id)
	default:
		return "missing dependency: nil cell"
	}
}
