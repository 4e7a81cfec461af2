package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/youthere/internal/config"
	"gitlab.com/dirk.krummacker/youthere/internal/contacts"
	"gitlab.com/dirk.krummacker/youthere/internal/importer"
	"gitlab.com/dirk.krummacker/youthere/internal/logger"
	"gitlab.com/dirk.krummacker/youthere/internal/storage"
)

// Usage example on the command line:
// > DBHOST=localhost DBUSER=dirk DBPWD=bullo92 go run main.go -replace
func main() {
	replacePtr := flag.Bool("replace", false, "remove all existing contacts and photos before importing")
	flag.Parse()

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

	sqlDB, err := importer.CreateDatabase(cfg.Database)
	if err != nil {
		lggr.Fatalw("could not open legacy database", "host", cfg.Database.Host, "err", err)
	}
	db := sqlx.NewDb(sqlDB, "mysql")
	defer db.Close()

	s, err := storage.New(cfg.DocumentsDir, cfg.CachesDir, lggr)
	if err != nil {
		lggr.Fatalw("could not prepare storage", "err", err)
	}
	book, err := contacts.Open(s, lggr)
	if err != nil {
		lggr.Fatalw("could not open contact book", "err", err)
	}
	if *replacePtr {
		if err := book.Reset(); err != nil {
			lggr.Fatalw("could not reset contact book", "err", err)
		}
	}

	result, err := importer.Import(db, book, lggr)
	if err != nil {
		lggr.Fatalw("import failed", "imported", result.Imported, "err", err)
	}
	fmt.Printf("Imported %d contacts, skipped %d.\n", result.Imported, result.Skipped)
}
