package model

import "time"

type UserID string // opaque user id e.g. 3GFQNuSg3dPqDD1emxv5bqX42oxq

// Skill levels accepted by the signup form. The store itself does not
// enforce these; they are the values the presentation layer submits.
const (
	SkillBeginner     = "Beginner"
	SkillIntermediate = "Intermediate"
	SkillAdvanced     = "Advanced"
)

// SignupParams is the request body for account creation. Activity maps an
// activity name to the submitted skill level, one entry per preference.
type SignupParams struct {
	Email     string            `json:"email"`
	Password  string            `json:"password"`
	FirstName string            `json:"firstName"`
	Activity  map[string]string `json:"activity"`
	City      string            `json:"city"`
	ZipCode   *int              `json:"zipCode"`
	Gender    string            `json:"gender"`
	Phone     string            `json:"phone"`
}

type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type DeleteParams struct {
	Email string `json:"email"`
}

// User is one registered person. Password holds the bcrypt hash, never the
// plaintext, and is kept out of JSON responses.
type User struct {
	ID        UserID    `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"-"`
	FirstName string    `db:"firstname" json:"firstname"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	City      *string   `db:"city" json:"city,omitempty"`
	ZipCode   *int      `db:"zipcode" json:"zipcode,omitempty"`
	Gender    *string   `db:"gender" json:"gender,omitempty"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
}

// UserActivity is one (activity, skill level) preference held by a user.
// Rows live and die with their owning user.
type UserActivity struct {
	ID         string `db:"useractivity_id" json:"useractivity_id"`
	UserID     UserID `db:"user_id" json:"user_id"`
	Activity   string `db:"activityname" json:"activityname"`
	SkillLevel string `db:"skilllevel" json:"skilllevel"`
}

// Match is one join row pairing a user with one of their activities.
type Match struct {
	UserID     UserID  `db:"user_id" json:"user_id"`
	FirstName  string  `db:"firstname" json:"firstname"`
	Email      string  `db:"email" json:"email"`
	City       *string `db:"city" json:"city"`
	ZipCode    *int    `db:"zipcode" json:"zipcode"`
	Gender     *string `db:"gender" json:"gender"`
	Phone      *string `db:"phone" json:"phone"`
	Activity   string  `db:"activityname" json:"activityname"`
	SkillLevel string  `db:"skilllevel" json:"skilllevel"`
}
