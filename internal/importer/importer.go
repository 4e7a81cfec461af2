// Package importer copies contacts from the legacy MySQL contacts table into the contact book.
package importer

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/youthere/internal/config"
	"gitlab.com/dirk.krummacker/youthere/internal/contacts"
	"gitlab.com/dirk.krummacker/youthere/internal/logger"
	"gitlab.com/dirk.krummacker/youthere/internal/model"
)

// LegacyContact is a row of the legacy contacts table.
// All fields with the exception of the Id field are optional.
type LegacyContact struct {
	Id        int64      `db:"id"`
	FirstName *string    `db:"firstname"`
	LastName  *string    `db:"lastname"`
	Phone     *string    `db:"phone"`
	Birthday  *time.Time `db:"birthday"`
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Form converts the row into the values of a new contact. The phone number becomes the
// description, the birthday becomes the event details.
func (lc LegacyContact) Form() model.ContactForm {
	form := model.ContactForm{
		FirstName: value(lc.FirstName),
		LastName:  value(lc.LastName),
	}
	if phone := value(lc.Phone); phone != "" {
		form.Description = "Phone: " + phone
	}
	if lc.Birthday != nil && !lc.Birthday.IsZero() {
		form.EventDetails = "Birthday: " + lc.Birthday.Format(time.DateOnly)
	}
	return form
}

// CreateDatabase initializes and returns a connection to the legacy database.
func CreateDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", cfg.User, cfg.Password, cfg.Host, cfg.Name)
	return sql.Open("mysql", dsn)
}

// Load reads all rows of the legacy contacts table ordered by id.
func Load(db *sqlx.DB) ([]LegacyContact, error) {
	var rows []LegacyContact
	if err := db.Select(&rows, `
		SELECT id, firstname, lastname, phone, birthday
		FROM contacts
		ORDER BY id
	`); err != nil {
		return nil, fmt.Errorf("could not read legacy contacts: %w", err)
	}
	return rows, nil
}

// Result counts the rows handled by Import.
type Result struct {
	Imported int
	Skipped  int
}

// Import adds every legacy contact with a first and last name to the book. Rows without names
// are skipped.
func Import(db *sqlx.DB, book *contacts.Book, lggr logger.Logger) (Result, error) {
	var result Result
	rows, err := Load(db)
	if err != nil {
		return result, err
	}
	for _, row := range rows {
		form := row.Form()
		if !form.Valid() {
			lggr.Warnw("skipping legacy contact", "id", row.Id, "missing", form.MissingFields())
			result.Skipped++
			continue
		}
		if err := book.Add(form.Contact(nil), nil); err != nil {
			return result, err
		}
		result.Imported++
	}
	lggr.Infow("legacy contacts imported", "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}
