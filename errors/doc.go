// Package errors provides structured error types for the mixin-runtime library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes the name of the mixin involved, a
// human-readable detail, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCopy, errors.KindUnsupportedAssign).
//		Mixin("velocity").
//		Detail("shape %q has no copy-assign for it", "mover").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnsupportedAssign(errors.PhaseCopy, "velocity")
//	err := errors.OutOfRange(errors.PhaseCompose, "mixin", 900, 512)
//
// All errors implement the standard error interface and support errors.Is/As.
// Matching with errors.Is compares Phase and Kind, so sentinel values built
// with New(...).Build() can classify failures without string inspection.
package errors
