package errx

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// WrapMongo maps MongoDB driver errors to the unified AppError type.
func WrapMongo(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return New(err, http.StatusNotFound, MongoNotFoundMessage)
	}

	return New(err, http.StatusBadGateway, MongoErrorMessage)
}
