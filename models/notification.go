package models

import "time"

// Notification kinds understood by the platform. The notification subsystem
// treats these as opaque tags; the UI uses them to pick icons and deep links.
const (
	NotificationKindInvite       = "invite"
	NotificationKindTeamUpdate   = "team-update"
	NotificationKindHackathon    = "hackathon"
	NotificationKindAnnouncement = "announcement"
	NotificationKindSystem       = "system"
)

// RelatedEntity carries optional foreign references for UI deep-linking.
// The notification subsystem never dereferences these.
type RelatedEntity struct {
	InviteID string `bson:"inviteId,omitempty" json:"inviteId,omitempty"`
	TeamID   string `bson:"teamId,omitempty" json:"teamId,omitempty"`
	EventID  string `bson:"eventId,omitempty" json:"eventId,omitempty"`
}

// Notification is a durable per-recipient notification record.
type Notification struct {
	ID        string         `bson:"id" json:"id"`
	Recipient string         `bson:"recipient" json:"recipient"`
	Sender    string         `bson:"sender,omitempty" json:"sender,omitempty"`
	Kind      string         `bson:"kind" json:"kind"`
	Message   string         `bson:"message" json:"message"`
	Related   *RelatedEntity `bson:"related,omitempty" json:"related,omitempty"`
	Read      bool           `bson:"read" json:"read"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`

	// Display fields resolved from the sender at delivery time.
	// Never persisted; the sender's profile is the source of truth.
	SenderName   string `bson:"-" json:"senderName,omitempty"`
	SenderAvatar string `bson:"-" json:"senderAvatar,omitempty"`
}

// NotificationPage is the paginated listing returned to the UI.
type NotificationPage struct {
	Data []Notification   `json:"data"`
	Meta NotificationMeta `json:"meta"`
}

// NotificationMeta carries pagination metadata.
type NotificationMeta struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	PageCount int64 `json:"pageCount"`
}

// AnnouncementPayload is the queued broadcast task body processed by the
// announcement worker.
type AnnouncementPayload struct {
	Actor      string   `json:"actor"`
	Message    string   `json:"message"`
	Recipients []string `json:"recipients,omitempty"`
}
