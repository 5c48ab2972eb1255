package internal

import (
	"errors"
	"fmt"
)

var (
	ErrNonexistentCell     = errors.New("nonexistent cell")
	ErrNonexistentCallback = errors.New("nonexistent callback")
	ErrReentrant           = errors.New("reactor called from within one of its own callbacks")
)

// MissingRefError reports a dependency that does not resolve to a node.
type MissingRefError struct {
	Ref Ref
}

func (e *MissingRefError) Error() string {
	return fmt.Sprintf("missing dependency: %s cell %d", e.Ref.Kind, e.Ref.ID)
}
