// Package mongoerr classifies MongoDB driver errors shared across stores.
package mongoerr

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// IsDuplicateKey reports whether err is a unique-index violation.
// Works across vendors (MongoDB, DocumentDB) which differ in how the
// E11000 error surfaces.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// IsNoDocuments reports whether err is the driver's "no documents" sentinel.
func IsNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
