// Command goshape compiles shape declaration files into JSON Schema bundles,
// OpenAPI component schemas or structural type signatures.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
