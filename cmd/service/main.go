package main

import (
	"fmt"
	"os"
	"strconv"

	"gitlab.com/dirk.krummacker/youthere/internal/config"
	"gitlab.com/dirk.krummacker/youthere/internal/contacts"
	"gitlab.com/dirk.krummacker/youthere/internal/location"
	"gitlab.com/dirk.krummacker/youthere/internal/logger"
	"gitlab.com/dirk.krummacker/youthere/internal/service"
	"gitlab.com/dirk.krummacker/youthere/internal/storage"
)

// Usage example on the command line:
// > PORT=8080 CONTACTS_DOCUMENTS_DIR=/tmp/youthere GIN_MODE=release GIN_LOGGING=OFF go run main.go
func main() {
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not load configuration", err)
		os.Exit(1)
	}
	lggr, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not create logger", err)
		os.Exit(1)
	}
	defer lggr.Sync()

	s, err := storage.New(cfg.DocumentsDir, cfg.CachesDir, lggr)
	if err != nil {
		lggr.Fatalw("could not prepare storage", "err", err)
	}
	book, err := contacts.Open(s, lggr)
	if err != nil {
		lggr.Fatalw("could not open contact book", "documents", cfg.DocumentsDir, "err", err)
	}
	if err := book.LoadImages(); err != nil {
		lggr.Fatalw("could not load photos", "err", err)
	}

	service.SetupContactBook(book, location.NewFetcher(lggr), lggr)
	router := service.SetupHttpRouter(cfg.GinLogging)
	addr := ":" + strconv.Itoa(cfg.Port)
	lggr.Infow("contact book service started", "addr", addr, "contacts", book.Len())
	if err := router.Run(addr); err != nil {
		lggr.Fatalw("service stopped", "err", err)
	}
}
