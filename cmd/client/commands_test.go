package main

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"strings"
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
	"gopkg.in/yaml.v3"
)

// startServer runs the service on a temporary contact book and returns its URL.
func startServer(t *testing.T) string {
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
	return server.URL
}

// execute runs the CLI with the given arguments and returns its output.
func execute(t *testing.T, url string, args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--url", url}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestAddListShowDelete(t *testing.T) {
	url := startServer(t)

	out, err := execute(t, url, "track")
	require.NoError(t, err)
	assert.Contains(t, out, "Location tracking started")
	_, err = execute(t, url, "locate", "--", "51.5072", "-0.1276")
	require.NoError(t, err)

	out, err = execute(t, url, "add", "--first", "Jake", "--last", "King", "--place", "London", "--event", "Meetup", "--save-location")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Jake King")
	_, err = execute(t, url, "add", "--first", "Erika", "--last", "Mustermann", "--description", "Photographer")
	require.NoError(t, err)

	out, err = execute(t, url, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Jake King"))
	assert.Equal(t, "    No further information available.", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "Erika Mustermann"))
	assert.Equal(t, "    Photographer", lines[3])

	id := strings.TrimSuffix(strings.SplitN(lines[0], "(", 2)[1], ")")
	out, err = execute(t, url, "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Met at:   London")
	assert.Contains(t, out, "Event:    Meetup")
	assert.Contains(t, out, "Location: 51.5072, -0.1276")

	out, err = execute(t, url, "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted contact "+id)

	out, err = execute(t, url, "list", "--lastname", "K")
	require.NoError(t, err)
	assert.Equal(t, "No contacts.\n", out)
}

func TestAddRequiresNames(t *testing.T) {
	_, err := execute(t, "http://localhost:0", "add", "--first", "Erika")
	assert.EqualError(t, err, "whoops! Looks like your new contact is missing some info. Please give them a last name.")
}

func TestInvalidArguments(t *testing.T) {
	_, err := execute(t, "http://localhost:0", "show", "not-an-id")
	assert.EqualError(t, err, `invalid contact id "not-an-id"`)
	_, err = execute(t, "http://localhost:0", "locate", "91", "0")
	assert.EqualError(t, err, `invalid latitude "91"`)
	_, err = execute(t, "http://localhost:0", "locate", "0", "east")
	assert.EqualError(t, err, `invalid longitude "east"`)
}

func TestExport(t *testing.T) {
	result := []model.Contact{{
		Id:                uuid.MustParse("0b8a3e4c-52a5-4a55-9d3c-5f1b3c1e7f10"),
		FirstName:         "Erika",
		LastName:          "Mustermann",
		Description:       "Photographer",
		LocationLatitude:  52.52,
		LocationLongitude: 13.405,
		MeetingPlace:      "Berlin",
		EventDetails:      "Exhibition",
	}}

	var jsonOut bytes.Buffer
	require.NoError(t, export(&jsonOut, result, "json"))
	assert.JSONEq(t, `[{
		"id": "0b8a3e4c-52a5-4a55-9d3c-5f1b3c1e7f10",
		"firstName": "Erika",
		"lastName": "Mustermann",
		"description": "Photographer",
		"location": {"title": "Berlin", "subtitle": "Exhibition", "latitude": 52.52, "longitude": 13.405}
	}]`, jsonOut.String())

	var yamlOut bytes.Buffer
	require.NoError(t, export(&yamlOut, result, "yaml"))
	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(yamlOut.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Mustermann", decoded[0]["lastName"])
	assert.Equal(t, "Berlin", decoded[0]["location"].(map[string]any)["title"])
	assert.Equal(t, 52.52, decoded[0]["location"].(map[string]any)["latitude"])

	assert.EqualError(t, export(&bytes.Buffer{}, result, "xml"), `unknown format "xml"`)
}
