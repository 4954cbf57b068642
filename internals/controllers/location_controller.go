package controllers

import (
	"net/http"

	"github.com/ramancoder123/dicideon/internals/locations"

	"github.com/gin-gonic/gin"
)

// LocationController serves the reference data behind the signup form's
// country/state/city dropdowns.
type LocationController struct {
	Locations *locations.Store
}

func NewLocationController(locs *locations.Store) *LocationController {
	return &LocationController{Locations: locs}
}

func (l *LocationController) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"countries": l.Locations.Countries(),
		"states":    l.Locations.States(),
		"cities":    l.Locations.Cities(),
	})
}

// PhoneCode resolves the dial code for a country, so the form can prefill it.
func (l *LocationController) PhoneCode(c *gin.Context) {
	country := c.Query("country")
	code := l.Locations.PhoneCode(country)
	if code == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown country"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"country": country, "phone_code": code})
}
