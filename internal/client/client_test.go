package client

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/dirk.krummacker/youthere/internal/contacts"
	"gitlab.com/dirk.krummacker/youthere/internal/location"
	"gitlab.com/dirk.krummacker/youthere/internal/logger"
	"gitlab.com/dirk.krummacker/youthere/internal/model"
	"gitlab.com/dirk.krummacker/youthere/internal/service"
	"gitlab.com/dirk.krummacker/youthere/internal/storage"
)

// startServer runs the contact book service on a temporary directory and returns a client for it.
func startServer(t *testing.T) *Client {
	root := t.TempDir()
	lggr := logger.Test(t)
	s, err := storage.New(filepath.Join(root, "documents"), filepath.Join(root, "caches"), lggr)
	require.NoError(t, err)
	book, err := contacts.Open(s, lggr)
	require.NoError(t, err)
	service.SetupContactBook(book, location.NewFetcher(lggr), lggr)
	gin.SetMode(gin.ReleaseMode)
	server := httptest.NewServer(service.SetupHttpRouter("off"))
	t.Cleanup(server.Close)
	return New(server.URL+"/", server.Client())
}

func TestCreateListDelete(t *testing.T) {
	ctx := context.Background()
	c := startServer(t)
	assert.True(t, c.Available(ctx))

	erika, err := c.Create(ctx, model.ContactForm{FirstName: "Erika", LastName: "Mustermann"})
	require.NoError(t, err)
	_, err = c.Create(ctx, model.ContactForm{FirstName: "Adam", LastName: "Adler"})
	require.NoError(t, err)

	all, err := c.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Adler", all[0].LastName)

	filtered, err := c.List(ctx, "Must")
	require.NoError(t, err)
	assert.Equal(t, []model.Contact{erika}, filtered)

	got, err := c.Get(ctx, erika.Id)
	require.NoError(t, err)
	assert.Equal(t, erika, got)

	require.NoError(t, c.Delete(ctx, erika.Id))
	_, err = c.Get(ctx, erika.Id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, c.Delete(ctx, erika.Id), ErrNotFound)
}

func TestCreateInvalid(t *testing.T) {
	c := startServer(t)
	_, err := c.Create(context.Background(), model.ContactForm{FirstName: "Erika"})
	assert.EqualError(t, err, "Looks like your new contact is missing some info. Please give them a last name.")
}

func TestLocation(t *testing.T) {
	ctx := context.Background()
	c := startServer(t)

	assert.Error(t, c.ReportLocation(ctx, model.Coordinate{Latitude: 1, Longitude: 2}))
	require.NoError(t, c.StartTracking(ctx))
	require.NoError(t, c.ReportLocation(ctx, model.Coordinate{Latitude: 50.0755, Longitude: 14.4378}))

	created, err := c.Create(ctx, model.ContactForm{
		FirstName:    "Pavla",
		LastName:     "Krummackerova",
		MeetingPlace: "Prague",
		SaveLocation: true,
	})
	require.NoError(t, err)

	pin, err := c.Location(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Prague", pin.Title)
	assert.Equal(t, model.Coordinate{Latitude: 50.0755, Longitude: 14.4378}, pin.Coordinate())
}

func TestPhotoNotFound(t *testing.T) {
	ctx := context.Background()
	c := startServer(t)
	created, err := c.Create(ctx, model.ContactForm{FirstName: "Erika", LastName: "Mustermann"})
	require.NoError(t, err)

	_, err = c.Photo(ctx, created.Id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.Photo(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
