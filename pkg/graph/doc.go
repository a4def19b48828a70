// Package graph provides the serialization types for positioned talent graphs.
//
// This package defines the wire format handed to the graph-drawing widget and
// returned by the CLI and HTTP API. It sits at the boundary between the layout
// engine (pkg/layout) and external consumers.
//
// # Core Types
//
//   - [Graph]: the node/edge sets the widget draws
//   - [Layout]: a [Graph] plus tier, divider and diagnostic information
//   - [Node], [Edge], [Position], [NodeData]: structural types
//
// # Constants
//
// This package is the single source of truth for rendering kinds:
//
//	graph.KindPassive   // "passiveNode"
//	graph.KindActive    // "activeNode"
//	graph.KindSwitch    // "switchNode"
//	graph.KindDivider   // "dividerNode"
//
// # Wire Format
//
// Graphs serialize in the shape the widget expects:
//
//	{
//	  "nodes": [{"id": "n1", "type": "passiveNode", "position": {"x": 20, "y": 20}, "data": {...}}],
//	  "edges": [{"id": "e1-2", "source": "n1", "target": "n2", "type": "straight"}]
//	}
//
// A [Layout] serializes with the graph fields at the top level, followed by
// "tiers", "dividers" and "diagnostics".
//
// # Identity
//
// Node and edge ids are derived from order ids, so repeated layout passes over
// the same tree produce comparable ids. Use [Graph.Canonical] to compare two
// graphs as sets.
package graph
