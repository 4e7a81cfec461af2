package contacts

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"gitlab.com/dirk.krummacker/youthere/internal/storage"
)

// photoQuality is the JPEG quality used for stored photos.
const photoQuality = 80

// ErrInvalidPhoto is returned when photo bytes cannot be decoded as an image.
var ErrInvalidPhoto = errors.New("invalid photo")

// compressPhoto decodes a JPEG, PNG or GIF image and re-encodes it as JPEG.
func compressPhoto(raw []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPhoto, err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: photoQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// imageFileName is the name of the file holding the photo with the given id.
func imageFileName(imageId uuid.UUID) string {
	return imageId.String() + ".json"
}

// Image returns the photo of a contact. The second return value is false if the contact has no
// photo.
func (b *Book) Image(imageId uuid.UUID) ([]byte, bool, error) {
	b.mu.RLock()
	data, ok := b.images[imageId]
	b.mu.RUnlock()
	if ok {
		return data, true, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loadImage(imageId)
}

// LoadImages reads the photos of all contacts into memory.
func (b *Book) LoadImages() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, contact := range b.contacts {
		if _, _, err := b.loadImage(contact.ImageId); err != nil {
			return err
		}
	}
	return nil
}

// loadImage must be called with the write lock held.
func (b *Book) loadImage(imageId uuid.UUID) ([]byte, bool, error) {
	if data, ok := b.images[imageId]; ok {
		return data, true, nil
	}
	fileName := imageFileName(imageId)
	if !b.storage.FileExists(fileName, storage.Documents) {
		return nil, false, nil
	}
	var data []byte
	if err := b.storage.Retrieve(fileName, storage.Documents, &data); err != nil {
		return nil, false, err
	}
	b.images[imageId] = data
	return data, true, nil
}
