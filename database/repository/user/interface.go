package userRepo

import (
	"kietcollab/config"
	"kietcollab/database"
	"kietcollab/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository exposes the user lookups the notification subsystem needs:
// sender display resolution, role checks and auth token verification. User
// lifecycle (registration, profile editing) lives elsewhere in the platform.
type UserRepository interface {
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
}

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo() UserRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("users")
	return &MongoUserRepo{coll: coll}
}
