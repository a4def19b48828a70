// Package layout turns talent records into a positioned graph.
//
// # Overview
//
// A layout pass has three stages:
//
//  1. [MapNode] places each talent on the pixel grid and picks its rendering
//     kind. [MapEdges] derives parent→child edges from ChildIDs.
//  2. [Tiers] groups the positioned talents by required points and
//     [Dividers] decides which tier boundaries get a separator line.
//  3. [DividerGraph] realizes every divider as two anchor nodes joined by
//     one edge.
//
// [BuildGraph] runs all three and returns a [graph.Layout].
//
// # Geometry
//
// A talent at (row, column) is placed at
//
//	x = 0.5 × (column + 1) × unit
//	y = 0.5 × (row + 1) × unit
//
// where unit is the grid spacing ([UnitGrid], the default) or node size plus
// grid spacing ([UnitCell]). The mode is part of [Settings] and applies to
// the whole pass.
//
// # Tier Boundaries
//
// Tiers are ordered by required points. The boundary in front of tier i is
// drawn only when every earlier tier ends strictly above the first row of
// tier i; the line sits halfway between the last row of the earlier tiers
// and the first row of tier i. Interleaved tiers produce no line.
//
// # Drag
//
// The package never mutates its input. [ApplyDrag] converts a dropped pixel
// position back into row and column and returns a new record slice that the
// caller feeds into the next [BuildGraph].
//
// [graph.Layout]: github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/graph.Layout
package layout
