package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ramancoder123/dicideon/internals/notify"
	"github.com/ramancoder123/dicideon/internals/registration"

	"github.com/gin-gonic/gin"
)

// AdminController exposes the human-in-the-loop side of the workflow:
// reviewing verified requests and recording the decision.
type AdminController struct {
	Registration *registration.Service
}

func NewAdminController(reg *registration.Service) *AdminController {
	return &AdminController{Registration: reg}
}

type DecisionReqBody struct {
	Email string `json:"email" binding:"required,email"`
}

// ListPending returns the requests awaiting a decision, newest first.
// Password hashes and OTP fields never leave the server.
func (a *AdminController) ListPending(c *gin.Context) {
	requests, err := a.Registration.PendingRequests()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pending requests"})
		return
	}

	out := make([]gin.H, 0, len(requests))
	for _, req := range requests {
		out = append(out, gin.H{
			"email":             req.Email,
			"user_id":           req.UserID,
			"full_name":         req.FullName(),
			"contact":           req.CountryCode + " " + req.ContactNumber,
			"date_of_birth":     req.DateOfBirth,
			"gender":            req.Gender,
			"organization_name": req.OrganizationName,
			"country":           req.Country,
			"state":             req.State,
			"city":              req.City,
			"request_timestamp": req.RequestTimestamp,
		})
	}
	c.JSON(http.StatusOK, gin.H{"requests": out})
}

// Approve creates the user account and notifies the applicant.
func (a *AdminController) Approve(c *gin.Context) {
	a.decide(c, "approved", a.Registration.Approve)
}

// Reject records the rejection and notifies the applicant.
func (a *AdminController) Reject(c *gin.Context) {
	a.decide(c, "rejected", a.Registration.Reject)
}

// HandleCorrupted rejects a request whose stored data failed integrity
// checks, asking the applicant to resubmit.
func (a *AdminController) HandleCorrupted(c *gin.Context) {
	a.decide(c, "closed as corrupted", a.Registration.HandleCorrupted)
}

func (a *AdminController) decide(c *gin.Context, verb string, op func(string) error) {
	var body DecisionReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := op(body.Email)
	if err != nil {
		var notificationErr *notify.NotificationError
		switch {
		case errors.Is(err, registration.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found. It may have been processed already."})
		case errors.Is(err, registration.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{"error": "Request is not awaiting approval."})
		case errors.Is(err, registration.ErrDuplicateUser):
			// Benign race: another approval or a manual provisioning got there first.
			c.JSON(http.StatusConflict, gin.H{"error": "A user with that email or user ID already exists. The request was left untouched."})
		case errors.As(err, &notificationErr):
			c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Request %s, but the notification email failed to send.", verb)})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("User %s %s and notified.", body.Email, verb)})
}
