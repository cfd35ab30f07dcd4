package sanitizer

import (
	"errors"
	"strconv"
)

var ErrInvalidID = errors.New("identifier must be an integer")

// IsValidID reports whether token is a sign-less base-10 integer that fits in int64.
func IsValidID(token string) bool {
	_, err := ParseID(token)
	return err == nil
}

func ParseID(token string) (int64, error) {
	if token == "" {
		return 0, ErrInvalidID
	}
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return 0, ErrInvalidID
		}
	}
	id, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}
