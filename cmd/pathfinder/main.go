// Command pathfinder solves grid mazes, verifies action sequences, answers
// knowledge-base queries and serves all three over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
