// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeIO,
//	    "failed to walk discovery root",
//	    walkErr,
//	    map[string]interface{}{
//	        "root": root,
//	    },
//	)
package errors
