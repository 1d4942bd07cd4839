package models

import "time"

// User roles.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User is a platform member. Only the fields the notification subsystem
// needs are modelled here: display resolution, role gating, auth token
// verification and the FCM fallback push target.
type User struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	AvatarURL string    `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	Role      string    `bson:"role" json:"role"`
	TokenHash string    `bson:"tokenHash,omitempty" json:"-"`
	FCMToken  string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
