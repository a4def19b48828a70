// Package render holds exporters for positioned talent graphs.
//
// Visual rendering belongs to the graph widget. The exporters here produce
// text formats that external tools can consume:
//
//   - [nodelink]: Graphviz DOT with every node pinned at its layout position
//
// [nodelink]: github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/render/nodelink
package render
