/*
Package runeport checks whether the ports of graph nodes can be linked.

A node declares typed input and output ports. An input accepts a value when the value's
descriptor matches the input's descriptor (or the input is a wildcard) and the value's kind
is assignable to one of the kinds the input lists. A passthrough output forwards whatever
its input was resolved to, so its kind is only known once the input is linked.

# Packages

  - kind: closed sets of value kinds with a precomputed assignability table.
  - descriptor: namespaced port descriptors ("ns:path").
  - port: the port configuration builder and the compatibility matcher.
  - blueprint: YAML/JSON documents declaring kinds, node blueprints and chains.
  - chain: static checking of chains and propagation of passthrough kinds.

# Usage

The Engine loads every document of a store and compiles it into a catalog:

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/runeport"
		"github.com/aretw0/runeport/pkg/adapters/file"
	)

	func main() {
		eng, err := runeport.New(file.New("./blueprints"))
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		if err := eng.Load(ctx); err != nil {
			log.Fatal(err)
		}
		if _, err := eng.Check(ctx); err != nil {
			log.Fatal(err)
		}
	}

The port package can also be used on its own, building configurations in code.
*/
package runeport
