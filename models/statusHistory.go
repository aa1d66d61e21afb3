package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// StatusHistory is an append-only record of a single issue status transition.
// Records are only ever inserted, never updated or deleted (except when the
// parent issue is deleted and its history is cascaded).
type StatusHistory struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IssueID   primitive.ObjectID `bson:"issueID" json:"issueID"`
	Status    IssueStatus        `bson:"status" json:"status"`
	HandledBy primitive.ObjectID `bson:"handledBy" json:"handledBy"`
	ChangedBy primitive.ObjectID `bson:"changedBy" json:"changedBy"`
	ChangedAt time.Time          `bson:"changedAt" json:"changedAt"`
}

// EnsureStatusHistoryIndex creates the compound index backing the
// handled-issues aggregation (match on handledBy, sort by changedAt)
func EnsureStatusHistoryIndex(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "handledBy", Value: 1}, {Key: "changedAt", Value: -1}},
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
