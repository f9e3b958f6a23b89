// Command ktestable learns a k-testable-in-the-strict-sense language
// from a newline-delimited file of example strings and prints the
// resulting cluster partition.
package main

import "os"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
