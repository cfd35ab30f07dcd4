package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContainsRegex_QuotesInput(t *testing.T) {
	re := ContainsRegex("(a+)+b")
	assert.Equal(t, `\(a\+\)\+b`, re["$regex"])
	assert.Equal(t, "i", re["$options"])
}

func TestExactRegex(t *testing.T) {
	assert.Equal(t, `^Rua\.A$`, ExactRegex("Rua.A")["$regex"])
}

func TestWithTimeout_UsesShorterDeadline(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	ctx, cancel2 := WithTimeout(parent, time.Hour)
	defer cancel2()

	deadline, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.True(t, time.Until(deadline) <= 20*time.Millisecond)
}

func TestWithTimeout_NoParentDeadline(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, ok := ctx.Deadline()
	assert.True(t, ok)
}
