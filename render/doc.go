// Package render turns a block tree into its final prompt string.
//
// A Renderer walks the tree depth first. For every block it resolves the
// effective style through a style.Manager, renders the children, then
// combines the block's head sentence with the child output using the
// resolved format dialect: plain (indent only), markdown (heading per
// depth), or xml (tag wrapping). The "list" children-format is orthogonal
// to the dialect and prefixes each child with a bullet.
//
// Rendering never mutates the tree, so the same tree can be rendered
// under different style managers to produce different dialects.
package render
