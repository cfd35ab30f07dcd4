package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/mongo"
)

func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// ContainsRegex builds a case-insensitive regex matching s literally anywhere.
func ContainsRegex(s string) map[string]any {
	return map[string]any{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

// ExactRegex builds a case-insensitive regex matching exactly s.
func ExactRegex(s string) map[string]any {
	return map[string]any{"$regex": "^" + regexp.QuoteMeta(s) + "$", "$options": "i"}
}
