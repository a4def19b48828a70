// Package nodelink exports a positioned talent graph as Graphviz DOT.
//
// # Overview
//
// [ToDOT] writes one DOT node per graph node with its position pinned
// (pos="x,y!"), so `neato -n` reproduces the layout engine's placement
// instead of running its own. Talent kinds map to shapes:
//
//   - passiveNode: circle
//   - activeNode: box
//   - switchNode: octagon
//   - dividerNode: point
//
// Edges with a gold arrow are drawn gold; divider edges are dashed and have
// no arrowhead.
//
// # Validation
//
// [Validate] parses DOT with [github.com/goccy/go-graphviz] and reports the
// node and edge counts Graphviz sees. It is used by tests and by the CLI
// before writing a file.
package nodelink
