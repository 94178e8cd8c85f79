package viewmodel

import "github.com/conduitapp/conduit/app/models"

// User is the authenticated-user envelope body returned by the user
// endpoints, carrying the current token.
type User struct {
	Email    string `json:"email"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

// Profile is the outward-facing view of a user as seen by a viewer.
type Profile struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

func NewUser(u *models.User, token string) User {
	return User{
		Email:    u.Email,
		Token:    token,
		Username: u.Username,
		Bio:      u.Bio,
		Image:    u.Image,
	}
}

// NewProfile composes the target's public fields with the viewer's
// already-resolved follow state. No datastore access happens here; the
// caller performs the follow-edge existence check.
func NewProfile(target *models.User, following bool) Profile {
	return Profile{
		Username:  target.Username,
		Bio:       target.Bio,
		Image:     target.Image,
		Following: following,
	}
}
