// Package contacts keeps the contact list in memory and mirrors it to contacts.json. Every
// mutation rewrites the whole file.
package contacts

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gitlab.com/dirk.krummacker/youthere/internal/logger"
	"gitlab.com/dirk.krummacker/youthere/internal/model"
	"gitlab.com/dirk.krummacker/youthere/internal/storage"
)

// contactsFile is the name of the file in the documents directory that holds all contacts.
const contactsFile = "contacts.json"

// Book is the list of all contacts together with their photos.
type Book struct {
	mu       sync.RWMutex
	storage  *storage.Storage
	lggr     logger.Logger
	contacts []model.Contact
	images   map[uuid.UUID][]byte
}

// Open loads the contact list from the documents directory. If there is no contact list yet, an
// empty one is written first.
func Open(s *storage.Storage, lggr logger.Logger) (*Book, error) {
	b := &Book{
		storage: s,
		lggr:    lggr,
		images:  make(map[uuid.UUID][]byte),
	}
	if !s.FileExists(contactsFile, storage.Documents) {
		if err := s.Store([]model.Contact{}, storage.Documents, contactsFile); err != nil {
			return nil, err
		}
		lggr.Infow("created empty contact list")
	}
	var contacts []model.Contact
	if err := s.Retrieve(contactsFile, storage.Documents, &contacts); err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}
	b.contacts = contacts
	lggr.Infow("contact list loaded", "contacts", len(contacts))
	return b, nil
}

// replace persists contacts and then makes them the in-memory list. Must be called with the write
// lock held.
func (b *Book) replace(contacts []model.Contact) error {
	if contacts == nil {
		contacts = []model.Contact{}
	}
	if err := b.storage.Store(contacts, storage.Documents, contactsFile); err != nil {
		return fmt.Errorf("could not save contacts: %w", err)
	}
	b.contacts = contacts
	return nil
}

// Len returns the number of contacts.
func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.contacts)
}

// All returns a copy of all contacts in the order they were added.
func (b *Book) All() []model.Contact {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.contacts)
}

// Sorted returns a copy of all contacts ordered by last name.
func (b *Book) Sorted() []model.Contact {
	contacts := b.All()
	model.SortByLastName(contacts)
	return contacts
}

// FindByLastName returns the contacts whose last name starts with prefix, ordered by last name.
func (b *Book) FindByLastName(prefix string) []model.Contact {
	return slices.DeleteFunc(b.Sorted(), func(c model.Contact) bool {
		return !strings.HasPrefix(c.LastName, prefix)
	})
}

// Find returns the contact with the given id.
func (b *Book) Find(id uuid.UUID) (model.Contact, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i := slices.IndexFunc(b.contacts, func(c model.Contact) bool { return c.Id == id })
	if i < 0 {
		return model.Contact{}, false
	}
	return b.contacts[i], true
}

// Add appends a contact and saves the whole list. If photo is not empty it is compressed and
// stored under the contact's image id.
func (b *Book) Add(contact model.Contact, photo []byte) error {
	var compressed []byte
	if len(photo) > 0 {
		var err error
		if compressed, err = compressPhoto(photo); err != nil {
			return err
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if compressed != nil {
		if err := b.storage.Store(compressed, storage.Documents, imageFileName(contact.ImageId)); err != nil {
			return fmt.Errorf("could not save photo: %w", err)
		}
		b.images[contact.ImageId] = compressed
	}
	updated := append(slices.Clone(b.contacts), contact)
	if err := b.replace(updated); err != nil {
		if compressed != nil {
			delete(b.images, contact.ImageId)
			if rmErr := b.storage.Remove(imageFileName(contact.ImageId), storage.Documents); rmErr != nil {
				b.lggr.Warnw("could not remove photo", "imageId", contact.ImageId, "err", rmErr)
			}
		}
		return err
	}
	b.lggr.Infow("contact added", "id", contact.Id, "contacts", len(b.contacts))
	return nil
}

// Delete removes the contact with the given id and saves the whole list. It returns false if
// there is no such contact.
func (b *Book) Delete(id uuid.UUID) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := slices.IndexFunc(b.contacts, func(c model.Contact) bool { return c.Id == id })
	if i < 0 {
		return false, nil
	}
	deleted := b.contacts[i]
	updated := slices.Delete(slices.Clone(b.contacts), i, i+1)
	if err := b.replace(updated); err != nil {
		return false, err
	}
	delete(b.images, deleted.ImageId)
	if err := b.storage.Remove(imageFileName(deleted.ImageId), storage.Documents); err != nil {
		b.lggr.Warnw("could not remove photo", "imageId", deleted.ImageId, "err", err)
	}
	b.lggr.Infow("contact deleted", "id", id, "contacts", len(b.contacts))
	return true, nil
}

// Reset removes all contacts and photos from the documents directory.
func (b *Book) Reset() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.storage.Clear(storage.Documents); err != nil {
		return err
	}
	b.images = make(map[uuid.UUID][]byte)
	b.contacts = []model.Contact{}
	if err := b.replace(nil); err != nil {
		return errors.Join(errors.New("contact list was cleared but not recreated"), err)
	}
	b.lggr.Infow("contact list reset")
	return nil
}
