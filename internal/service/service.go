package service

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gitlab.com/dirk.krummacker/youthere/internal/contacts"
	"gitlab.com/dirk.krummacker/youthere/internal/location"
	"gitlab.com/dirk.krummacker/youthere/internal/logger"
	"gitlab.com/dirk.krummacker/youthere/internal/model"
)

// book is the contact list served by the API.
var book *contacts.Book

// locator holds the last position reported by the device.
var locator *location.Fetcher

// lggr is the logger of the service.
var lggr logger.Logger = logger.Nop()

// SetupContactBook makes the service use the specified contact book and location fetcher. The
// book can be backed by the real documents directory or by a temporary one within unit tests.
func SetupContactBook(b *contacts.Book, f *location.Fetcher, l logger.Logger) {
	book = b
	locator = f
	lggr = l
}

// SetupHttpRouter initializes the REST API router and registers all endpoints. If ginLogging is
// "off" (in any case), HTTP requests are not logged.
func SetupHttpRouter(ginLogging string) *gin.Engine {
	var router *gin.Engine
	if strings.EqualFold(ginLogging, "off") {
		lggr.Infow("turning off HTTP request logging")
		router = gin.New()
		router.Use(gin.Recovery())
	} else {
		router = gin.Default()
	}
	router.GET("/contacts", findContacts)
	router.POST("/contacts", createContact)
	router.GET("/contacts/:id", findContactByID)
	router.DELETE("/contacts/:id", deleteContactByID)
	router.GET("/contacts/:id/photo", findPhotoByID)
	router.GET("/contacts/:id/location", findLocationByID)
	router.PUT("/location/tracking", startTracking)
	router.POST("/location", updateLocation)
	router.GET("/location", findLocation)
	return router
}

// findContacts responds with the list of contacts as JSON, sorted by last name.
//
// The URL parameter 'lastname' is interpreted as the beginning of the last name of the contact.
//
// The URL parameter 'limit' specifies how many contacts matching the search criteria are returned.
// The URL parameter 'offset' specifies how many items from the sorted list of results are skipped
// in the beginning. Together with the 'limit' parameter, one can implement search result paging.
//
// REST API calls:
//
//	> curl "http://localhost:8080/contacts"
//	> curl "http://localhost:8080/contacts?lastname=Smi"
//	> curl "http://localhost:8080/contacts?limit=20&offset=60"
func findContacts(c *gin.Context) {
	limit, offset, success := parseLimitAndOffset(c)
	if !success {
		return
	}
	result := book.FindByLastName(c.Query("lastname"))
	if offset >= len(result) {
		result = result[:0]
	} else {
		result = result[offset:]
	}
	if limit < len(result) {
		result = result[:limit]
	}
	c.IndentedJSON(http.StatusOK, result)
}

// parseLimitAndOffset inspects the URL parameters and determines values for limit and offset of
// the result set. Without a limit, all contacts are returned.
func parseLimitAndOffset(c *gin.Context) (limit int, offset int, success bool) {
	limitAsString := c.Query("limit")
	offsetAsString := c.Query("offset")
	limit = maxInt
	if limitAsString != "" {
		var errConv error
		limit, errConv = strconv.Atoi(limitAsString)
		if errConv != nil || limit < 1 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid limit parameter"})
			return 0, 0, false
		}
	}
	if offsetAsString != "" {
		var errConv error
		offset, errConv = strconv.Atoi(offsetAsString)
		if errConv != nil || offset < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid offset parameter"})
			return 0, 0, false
		}
	}
	return limit, offset, true
}

// maxInt is the largest possible int value
const maxInt = int(^uint(0) >> 1)

// createContact adds the contact specified in the request's JSON to the contact book. It responds
// with the full contact data including the newly assigned ids.
//
// First and last name are required. If 'saveLocation' is true, the last position reported via
// POST /location is stored with the contact. A photo can be sent as base64 in 'photo'.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts --request "POST" --include --header "Content-Type: application/json" --data '{"firstName": "Hans", "lastName": "Wurst", "meetingPlace": "Prague", "saveLocation": true}'
func createContact(c *gin.Context) {
	var form model.ContactForm
	if err := c.BindJSON(&form); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	if !form.Valid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": form.MissingDataMessage()})
		return
	}

	var contactLocation *model.Coordinate
	if form.SaveLocation {
		if position, known := locator.LastKnownLocation(); known {
			contactLocation = &position
		} else {
			lggr.Warnw("contact's location unknown", "tracking", locator.Tracking())
		}
	}

	newContact := form.Contact(contactLocation)
	if err := book.Add(newContact, form.Photo); err != nil {
		if errors.Is(err, contacts.ErrInvalidPhoto) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid photo"})
			return
		}
		lggr.Panicw("could not add contact", "err", err)
	}
	c.IndentedJSON(http.StatusCreated, newContact)
}

// parseID reads the id parameter of the request URL. If it is not a valid id, the request is
// answered with NOT FOUND.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "invalid id parameter"})
		return uuid.Nil, false
	}
	return id, true
}

// findContact resolves the id parameter of the request URL to a contact. If there is no such
// contact, the request is answered with NOT FOUND.
func findContact(c *gin.Context) (model.Contact, bool) {
	id, ok := parseID(c)
	if !ok {
		return model.Contact{}, false
	}
	contact, found := book.Find(id)
	if !found {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
		return model.Contact{}, false
	}
	return contact, true
}

// findContactByID locates the contact whose ID value matches the id parameter of the request URL,
// then returns that contact as a response.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/0b8a3e4c-52a5-4a55-9d3c-5f1b3c1e7f10
func findContactByID(c *gin.Context) {
	contact, ok := findContact(c)
	if !ok {
		return
	}
	c.IndentedJSON(http.StatusOK, contact)
}

// deleteContactByID deletes the contact whose ID value matches the id parameter of the request URL
// from the contact book.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/0b8a3e4c-52a5-4a55-9d3c-5f1b3c1e7f10 --request "DELETE"
func deleteContactByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := book.Delete(id)
	if err != nil {
		lggr.Panicw("could not delete contact", "id", id, "err", err)
	}
	if deleted {
		c.IndentedJSON(http.StatusOK, gin.H{"message": "contact deleted"})
	} else {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
	}
}

// findPhotoByID responds with the JPEG photo of the contact.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/0b8a3e4c-52a5-4a55-9d3c-5f1b3c1e7f10/photo --output photo.jpg
func findPhotoByID(c *gin.Context) {
	contact, ok := findContact(c)
	if !ok {
		return
	}
	photo, found, err := book.Image(contact.ImageId)
	if err != nil {
		lggr.Panicw("could not read photo", "imageId", contact.ImageId, "err", err)
	}
	if !found {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "photo not found"})
		return
	}
	c.Data(http.StatusOK, "image/jpeg", photo)
}

// findLocationByID responds with the map pin of the place where we met the contact.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/0b8a3e4c-52a5-4a55-9d3c-5f1b3c1e7f10/location
func findLocationByID(c *gin.Context) {
	contact, ok := findContact(c)
	if !ok {
		return
	}
	c.IndentedJSON(http.StatusOK, contact.Annotation())
}

// startTracking records the user's permission to store locations with new contacts.
//
// Example REST API call:
//
//	> curl http://localhost:8080/location/tracking --request "PUT"
func startTracking(c *gin.Context) {
	locator.Start()
	c.IndentedJSON(http.StatusOK, gin.H{"message": "location tracking started"})
}

// locationUpdate is the body of POST /location.
type locationUpdate struct {
	Locations []model.Coordinate `json:"locations"`
}

// updateLocation receives positions from the device. Only the first position is kept.
//
// Example REST API call:
//
//	> curl http://localhost:8080/location --request "POST" --header "Content-Type: application/json" --data '{"locations": [{"latitude": 50.08, "longitude": 14.43}]}'
func updateLocation(c *gin.Context) {
	var update locationUpdate
	if err := c.BindJSON(&update); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	if len(update.Locations) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "no locations"})
		return
	}
	if !locator.Update(update.Locations) {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"message": "location tracking not started"})
		return
	}
	c.IndentedJSON(http.StatusOK, update.Locations[0])
}

// findLocation responds with the last known position of the device.
//
// Example REST API call:
//
//	> curl http://localhost:8080/location
func findLocation(c *gin.Context) {
	position, known := locator.LastKnownLocation()
	if !known {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "location unknown"})
		return
	}
	c.IndentedJSON(http.StatusOK, position)
}
