package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

// Usage example on the command line:
// > go run . add --first Erika --last Mustermann --place Berlin
// > go run . list
// > CONTACTS_URL=http://localhost:8181 go run . export --format yaml
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	return newRootCmd().ExecuteContext(ctx)
}
