package port

import "fmt"

// ContractViolation describes caller misuse of a Builder or Configuration.
// It is never returned: it is the value passed to panic, since ordinals and
// port handles are fixed while the graph is being constructed.
type ContractViolation struct {
	Op     string
	Reason string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("port: %s: %s", e.Op, e.Reason)
}

func violate(op, format string, args ...any) {
	panic(&ContractViolation{Op: op, Reason: fmt.Sprintf(format, args...)})
}
