// Package schema provides typed attribute descriptors and tool schema
// utilities for the block renderer and message transform.
//
// An [Attr] describes a value the model is expected to fill in: its type,
// optional numeric bounds, and a description. The XML renderer emits attrs
// as instructional placeholder strings instead of literal data, producing
// "fill in this value" documentation for tool-call formats.
//
// A [Tool] describes an action available to the model: name, description,
// and a JSON Schema for its parameters. Schemas can be written by hand,
// built with [Object] and the property builders, or generated from a Go
// type with [FromType]. Compiled schemas validate parsed tool arguments
// before execution.
package schema
