package domain

import "time"

// User identities are UUID strings; Mongo document ids for trips and
// destinations are ObjectIDs.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Username     *string   `bson:"username,omitempty" json:"username,omitempty"`
	FullName     *string   `bson:"full_name,omitempty" json:"full_name,omitempty"`
	PasswordHash []byte    `bson:"password_hash,omitempty" json:"-"`
	PasswordSalt []byte    `bson:"password_salt,omitempty" json:"-"`
	GoogleLinked bool      `bson:"google_linked" json:"google_linked"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
