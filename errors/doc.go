// Package errors provides structured error types for the boundary layer.
//
// Errors are categorized by Stage (where in the dispatch sequence the error
// occurred) and Kind (the category a host sees in the error record). The
// Error type carries the entry-point name, the offending parameter, and a
// cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.StageValidate, errors.KindInvalidParameter).
//		Op("CreateSolarPosition").
//		Param("latitude").
//		Detail("value %v outside valid range [-90, 90]", lat).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfRange("CreateSolarPosition", "latitude", lat, "[-90, 90]")
//	err := errors.NullHandle("SunElevation", "solar")
//
// Classify is the single point where engine failure signals — returned
// errors and recovered panics alike — are mapped into tagged variants. A
// final KindUnknown variant remains for genuinely unclassified failures.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
