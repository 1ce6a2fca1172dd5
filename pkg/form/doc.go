// Package form holds the entry form model: the committed table of
// (name, country) entries, the transient form fields, and a pure reducer that
// applies user and collaborator actions to a State value.
//
// Reduce never mutates its input. Callers own serialisation of calls; the
// controller package wraps the reducer with a mutex and a debounced validator.
package form
