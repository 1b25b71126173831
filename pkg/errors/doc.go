// Package errors provides structured error types for recipe loading and
// programmatic error handling across the application.
//
// Only the loader boundary produces errors. Queries against a loaded recipe
// never fail; they degrade to empty results instead.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeInvalidRecipe,
//	    "header entry is missing a field",
//	    cause,
//	    map[string]any{
//	        "source": "cm://imaging/deid",
//	        "index":  3,
//	    },
//	)
package errors
