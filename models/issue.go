package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IssueCategory enum
type IssueCategory string

const (
	Potholes        IssueCategory = "Potholes"
	BurstWaterPipes IssueCategory = "Burst Water Pipes"
	SewerIssues     IssueCategory = "Sewer Issues"
	Streetlights    IssueCategory = "Streetlights"
	TrafficLights   IssueCategory = "Traffic Lights"
	OtherCategory   IssueCategory = "Other"
)

// AllIssueCategories is the full closed category set.
var AllIssueCategories = []IssueCategory{
	Potholes,
	BurstWaterPipes,
	SewerIssues,
	Streetlights,
	TrafficLights,
	OtherCategory,
}

func (c IssueCategory) IsValid() bool {
	switch c {
	case Potholes, BurstWaterPipes, SewerIssues, Streetlights, TrafficLights, OtherCategory:
		return true
	}
	return false
}

// IssueStatus enum
type IssueStatus string

const (
	Reported   IssueStatus = "Reported"
	InProgress IssueStatus = "In Progress"
	Resolved   IssueStatus = "Resolved"
	Rejected   IssueStatus = "Rejected"
	Pending    IssueStatus = "Pending"
)

func (s IssueStatus) IsValid() bool {
	switch s {
	case Reported, InProgress, Resolved, Rejected, Pending:
		return true
	}
	return false
}

// Location is embedded in an issue document
type Location struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
	Address   string  `bson:"address,omitempty" json:"address,omitempty"`
}

// Issue represents a civic issue reported by a citizen
type Issue struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	CitizenID   primitive.ObjectID  `bson:"citizenId" json:"citizenId"`
	Category    IssueCategory       `bson:"category" json:"category"`
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description" json:"description"`
	Status      IssueStatus         `bson:"status" json:"status"`
	Location    Location            `bson:"location" json:"location"`
	MediaID     *primitive.ObjectID `bson:"media,omitempty" json:"media,omitempty"`
	HandledBy   *primitive.ObjectID `bson:"handledBy,omitempty" json:"handledBy,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// EnsureIssueIndexes creates the unique title index
func EnsureIssueIndexes(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "title", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
