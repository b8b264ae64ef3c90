package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// ErrCodeSpaceExhausted is returned when no free order code could be found
// within the attempt bound. With a 4-digit numeric alphabet the pool shrinks
// as order volume grows; exhaustion must surface explicitly, not spin.
var ErrCodeSpaceExhausted = errors.New("could not generate a unique order code")

const codeAlphabet = "0123456789"

// CodeChecker is the subset of the order store the generator needs.
type CodeChecker interface {
	CodeExists(ctx context.Context, code string) (bool, error)
}

// CodeGenerator produces short human-typeable order codes, collision-checked
// against the order store. The existence check is read-only; the actual
// reservation happens when the caller persists the order, so a race between
// check and persist is possible and is backstopped by the store's uniqueness
// constraint.
type CodeGenerator struct {
	checker     CodeChecker
	length      int
	maxAttempts int
}

// NewCodeGenerator creates a CodeGenerator drawing codes of the given width
// with a bounded number of collision retries.
func NewCodeGenerator(checker CodeChecker, length, maxAttempts int) *CodeGenerator {
	return &CodeGenerator{
		checker:     checker,
		length:      length,
		maxAttempts: maxAttempts,
	}
}

// Generate draws random candidates until one is free or the attempt bound
// is hit.
func (g *CodeGenerator) Generate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		code := g.draw()

		exists, err := g.checker.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check code existence: %w", err)
		}
		if !exists {
			return code, nil
		}
	}

	return "", ErrCodeSpaceExhausted
}

func (g *CodeGenerator) draw() string {
	var sb strings.Builder
	sb.Grow(g.length)
	for i := 0; i < g.length; i++ {
		sb.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}
	return sb.String()
}
