package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"gitlab.com/dirk.krummacker/youthere/internal/client"
	"gitlab.com/dirk.krummacker/youthere/internal/config"
)

// Usage example on the command line:
// > CONTACTS_URL=http://localhost:8080 go run main.go
func main() {
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not load configuration", err)
		os.Exit(1)
	}
	c := client.New(cfg.ServiceURL, nil)
	totalWaitTime := 0
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		available := c.Available(ctx)
		cancel()
		if available {
			fmt.Printf("%s is available\n", cfg.ServiceURL)
			break
		}
		totalWaitTime += 5
		fmt.Printf("Waiting %d seconds\n", totalWaitTime)
		time.Sleep(5 * time.Second)
	}
}
