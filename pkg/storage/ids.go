package storage

import (
	"github.com/juju/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// parseID turns a hex id into an ObjectID. Ids that cannot name a stored
// post are reported as not found.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errors.NotFoundf("blog post %q", id)
	}
	return oid, nil
}
