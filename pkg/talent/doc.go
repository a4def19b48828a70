// Package talent defines the talent tree records consumed by the layout engine.
//
// # Overview
//
// A talent tree is a flat collection of [Node] records. Each record carries
// logical grid coordinates (row, column), the point threshold that gates it
// (RequiredPoints) and the order ids of the talents it unlocks (ChildIDs).
// ParentIDs is carried for completeness; layout is driven purely by ChildIDs.
//
// # Decoding
//
// Payloads arrive from the content API either as an ordered array of records
// or as an object keyed by order id. [Decode] accepts both, in JSON or YAML,
// and returns the records as a slice. Keyed payloads are ordered by order id
// so repeated decodes of the same payload produce the same slice:
//
//	nodes, err := talent.Decode(data)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // payload is not a collection of records
//	}
//
// The backend encodes pre_filled as 0/1; [Decode] accepts integers and booleans.
//
// # Immutability
//
// Functions in this package never modify their input. [Node.Clone] returns a
// copy that shares no slices with the original, which is what callers use
// before rewriting coordinates after an interactive drag.
package talent
