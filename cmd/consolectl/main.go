// consolectl drives the account console gRPC API from the command line.
// Set CONSOLE_ADDR and CONSOLE_TOKEN, or pass --addr and --token.
package main

import "os"

func main() {
	if err := newRootCommand(realDeps()).Execute(); err != nil {
		os.Exit(1)
	}
}
