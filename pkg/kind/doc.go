/*
Package kind provides the closed enumeration of data kinds that ports accept and produce.

Kinds are declared on a Registry, each optionally extending previously declared kinds.
Freezing the registry computes the full assignability closure once, so the
compatibility checks performed while wiring a node graph never walk the hierarchy:

	reg := kind.NewRegistry()
	number := reg.Define("number")
	integer := reg.Define("integer", number)
	table := reg.Freeze()

	table.Assignable(integer, number) // true
	table.Assignable(number, integer) // false
*/
package kind
