/*
Package port declares the typed inputs and outputs of a node blueprint and answers the
two questions a node-graph wiring step asks:

  - may this output feed that input? (IsCompatible)
  - which kind does a passthrough output carry right now? (ResolveOutputKind, IsOutputEnabled)

An input is compatible with a candidate output when the candidate kind is assignable to one of
the accepted kinds and, unless the input is a wildcard, the descriptors are equal.

	b := port.NewBuilder(table)
	a := b.In(descriptor.New("rune", "numeric"), number)
	b.Out(descriptor.New("rune", "numeric"), number)
	b.Passthrough(number, a)
	cfg := b.Build()

	cfg.IsCompatible(0, descriptor.New("rune", "numeric"), integer) // true
	cfg.ResolveOutputKind(1, []kind.Kind{kind.None})               // none, false

Misuse such as an out-of-range ordinal or declaring ports after Build panics with a
*ContractViolation. A passthrough output whose input has not resolved is not an error:
it simply reports disabled.
*/
package port
