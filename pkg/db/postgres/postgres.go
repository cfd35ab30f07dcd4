// Package postgres holds helpers shared by the sqlx repositories: error
// classification for lib/pq, LIKE escaping and accent-insensitive column folding.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

// SQLSTATE codes.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
)

// AccentChars and PlainChars are the two translate() alphabets used to fold
// accented lower-case letters to their base letter. Both have the same rune count.
const (
	AccentChars = "áàâãäåāéèêëēíìîïīóòôõöōúùûüūçñýÿ"
	PlainChars  = "aaaaaaaeeeeeiiiiioooooouuuuucnyy"
)

// FoldedColumn returns a SQL expression lower-casing column and stripping its accents.
func FoldedColumn(column string) string {
	return fmt.Sprintf("translate(lower(%s), '%s', '%s')", column, AccentChars, PlainChars)
}

// EscapeLike escapes the LIKE metacharacters of s using backslash.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}

func IsUniqueViolation(err error) bool {
	return hasCode(err, UniqueViolation)
}

func IsForeignKeyViolation(err error) bool {
	return hasCode(err, ForeignKeyViolation)
}

func hasCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}

// WithTimeout bounds ctx by timeout unless ctx already expires sooner.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}
