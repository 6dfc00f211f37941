/*
Package blueprint loads declarative node blueprint documents and compiles them into
port configurations.

A document lists kinds, blueprints with named ports, and chains of node instances:

	namespace: rune
	wildcard: rune:any
	kinds:
	  - name: number
	  - name: integer
	    extends: [number]
	blueprints:
	  - name: add
	    inputs:
	      - {name: a, descriptor: numeric, kind: number}
	      - {name: b, descriptor: numeric, kind: number}
	    outputs:
	      - {name: sum, descriptor: numeric, kind: number}
	      - {name: first, passthrough: a, kind: number}

Descriptors without a namespace are placed in the document namespace. Mistakes in a document
are reported as an *AggregateError listing every problem, never as a panic.
*/
package blueprint
