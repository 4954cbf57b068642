package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequestIsTerminal(t *testing.T) {
	for status, want := range map[string]bool{
		StatusPendingOTP:      false,
		StatusPendingApproval: false,
		StatusApproved:        true,
		StatusRejected:        true,
	} {
		req := SignupRequest{Status: status}
		assert.Equal(t, want, req.IsTerminal(), status)
	}
}

func TestSignupRequestFullName(t *testing.T) {
	req := SignupRequest{FirstName: "Ada", LastName: "Lovelace"}
	assert.Equal(t, "Ada Lovelace", req.FullName())

	req.MiddleName = "King"
	assert.Equal(t, "Ada King Lovelace", req.FullName())
}
