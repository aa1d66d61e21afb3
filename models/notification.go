package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType enum
type NotificationType string

const (
	PowerOutage       NotificationType = "Power Outage"
	WaterSupply       NotificationType = "Water Supply"
	RoadMaintenance   NotificationType = "Road Maintenance"
	OtherNotification NotificationType = "Other"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case PowerOutage, WaterSupply, RoadMaintenance, OtherNotification:
		return true
	}
	return false
}

// Notification is a broadcast announcement created by an administrator.
// It is not targeted; every citizen is considered a recipient.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Type      NotificationType   `bson:"type" json:"type"`
	CreatedBy primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
