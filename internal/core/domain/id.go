package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID returns a fresh 24-hex identifier. Both stores use the same shape so
// the API can reject malformed ids before touching storage.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

func ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}
