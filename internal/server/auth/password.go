package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// Hasher hashes and verifies passwords with bcrypt. At most maxConcurrent
// bcrypt operations run at once; callers beyond that wait on ctx.
type Hasher struct {
	cost  int
	sem   *semaphore.Weighted
	dummy []byte
}

// NewHasher builds a Hasher for the given bcrypt cost.
func NewHasher(cost int, maxConcurrent int64) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("invalid bcrypt cost %d", cost)
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("gophauth-missing-account"), cost)
	if err != nil {
		return nil, err
	}

	return &Hasher{cost: cost, sem: semaphore.NewWeighted(maxConcurrent), dummy: dummy}, nil
}

// Hash returns the bcrypt hash of password. Passwords longer than 72 bytes
// are rejected with bcrypt.ErrPasswordTooLong.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare reports whether password matches hash.
func (h *Hasher) Compare(ctx context.Context, hash, password string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.sem.Release(1)

	return compare([]byte(hash), password)
}

// CompareMissing burns the same work as Compare against a throwaway hash, so
// an unknown username costs as much as a wrong password. It always fails.
func (h *Hasher) CompareMissing(ctx context.Context, password string) error {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer h.sem.Release(1)

	_, err := compare(h.dummy, password)
	return err
}

func compare(hash []byte, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrPasswordTooLong):
		return false, nil
	default:
		return false, err
	}
}
