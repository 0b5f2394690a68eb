package entities

import (
	"github.com/google/uuid"
)

// Subscription rows carry no payload, presence is the whole state.
// subscriber != author is re-checked in the service on every add.
type Subscription struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	SubscriberID uuid.UUID `gorm:"uniqueIndex:idx_subscriber_author" json:"subscriber_id"`
	AuthorID     uuid.UUID `gorm:"uniqueIndex:idx_subscriber_author" json:"author_id"`

	Subscriber *User `gorm:"foreignKey:SubscriberID" json:"-"`
	Author     *User `gorm:"foreignKey:AuthorID" json:"-"`
	Timestamp
}
