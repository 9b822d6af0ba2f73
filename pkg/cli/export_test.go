package cli

import "io"

// SetOutput replaces the writer commands print to and returns a restore function
func SetOutput(w io.Writer) func() {
	prev := output
	output = w
	return func() { output = prev }
}

// IndexConfig exposes the Firestore index configuration for testing
var IndexConfig = indexConfig
