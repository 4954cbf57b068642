package registration

import (
	"errors"
	"fmt"

	"github.com/ramancoder123/dicideon/internals/models"

	"gorm.io/gorm"
)

// Field labels used as notification keys and in alert emails.
const (
	FieldEmail         = "Email Address"
	FieldUserID        = "User ID"
	FieldContactNumber = "Contact Number"
)

const (
	msgEmailTaken   = "This email address is already registered or pending approval."
	msgUserIDTaken  = "This User ID is already registered or pending approval."
	msgContactTaken = "This contact number is already registered or pending approval."
)

// CheckUniqueness verifies that email, userID and contactNumber are not held
// by an existing user or an active (non-terminal) signup request. All three
// fields are checked independently — the caller gets every applicable error
// at once, deduplicated.
//
// The returned notifications map field labels to the email of the account
// that owns the conflicting value, so the caller can alert the owner about
// the attempt. For a conflicting email that owner is the address itself; for
// the other fields the owner is only included when it differs from the
// submitted email (no self-notification). Dispatching is the caller's job
// and must never abort the signup flow.
func CheckUniqueness(db *gorm.DB, email, userID, contactNumber string) ([]string, map[string]string, error) {
	return checkUniqueness(db, email, userID, contactNumber, false)
}

// checkUniqueness with forUpsert set ignores conflicts held by the submitted
// email's own request: Initiate replaces that row, so it must not block a
// signup retry. Conflicts owned by anyone else still count.
func checkUniqueness(db *gorm.DB, email, userID, contactNumber string, forUpsert bool) ([]string, map[string]string, error) {
	var messages []string
	notifications := make(map[string]string)

	excludeEmail := ""
	if forUpsert {
		excludeEmail = email
	}

	taken, _, err := fieldTaken(db, "email", "email", email, excludeEmail)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		messages = append(messages, msgEmailTaken)
		notifications[FieldEmail] = email
	}

	taken, owner, err := fieldTaken(db, "username", "user_id", userID, excludeEmail)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		messages = append(messages, msgUserIDTaken)
		if owner != "" && owner != email {
			notifications[FieldUserID] = owner
		}
	}

	taken, owner, err = fieldTaken(db, "contact_number", "contact_number", contactNumber, excludeEmail)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		messages = append(messages, msgContactTaken)
		if owner != "" && owner != email {
			notifications[FieldContactNumber] = owner
		}
	}

	return dedupe(messages), notifications, nil
}

// fieldTaken reports whether value is held by a user (userCol) or by an
// active signup request (reqCol), and by whose email. Requests owned by
// excludeEmail are skipped when it is non-empty. Blank values are never
// considered taken; required-field validation happens elsewhere.
func fieldTaken(db *gorm.DB, userCol, reqCol, value, excludeEmail string) (bool, string, error) {
	if value == "" {
		return false, "", nil
	}

	var user models.User
	err := db.Select("email").Where(fmt.Sprintf("%s = ?", userCol), value).First(&user).Error
	if err == nil {
		return true, user.Email, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, "", err
	}

	query := db.Select("email").
		Where(fmt.Sprintf("%s = ?", reqCol), value).
		Where("status IN ?", models.ActiveStatuses)
	if excludeEmail != "" {
		query = query.Where("email <> ?", excludeEmail)
	}

	var req models.SignupRequest
	err = query.First(&req).Error
	if err == nil {
		return true, req.Email, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, "", err
	}
	return false, "", nil
}

func dedupe(messages []string) []string {
	seen := make(map[string]bool, len(messages))
	out := messages[:0]
	for _, m := range messages {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}
