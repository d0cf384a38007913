// Package model defines the typed form model the rest of the module
// consumes. Inference lives in internal/model but returns the types
// defined here: each raw field descriptor becomes a FormField with a
// concrete widget kind, optional numeric bounds, and ordered options whose
// index positions match the integer encoding the scoring service expects.
package model
