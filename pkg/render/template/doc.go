// Package template defines the template rendering seam used by HTML surfaces.
// The gotemplate subpackage provides the pongo2-backed implementation.
package template
