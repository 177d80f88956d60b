package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// stampWidth is the width of the hex-encoded unix-seconds component of a
// time-stamped identifier. Stamping is only worthwhile when the configured
// length leaves room for random characters next to it.
const stampWidth = 8

const (
	defaultIDLength    = 5
	defaultMaxAttempts = 10
)

// IDAllocator mints collision-free link identifiers: generate a candidate,
// look it up, retry on a hit. Soft-deleted records count as taken, so an
// identifier is never reused. The loop is bounded; exhausting the bound
// returns ErrIDSpaceExhausted.
type IDAllocator struct {
	store       Store
	length      int
	stamped     bool
	maxAttempts int
	now         func() time.Time
}

func NewIDAllocator(store Store, length int, includeTimestamp bool, maxAttempts int) *IDAllocator {
	if length <= 0 {
		length = defaultIDLength
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &IDAllocator{
		store:       store,
		length:      length,
		stamped:     includeTimestamp && length >= stampWidth+2,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Allocate returns a free identifier and the capacity units spent checking
// candidates. Every lookup is billed whether it hits or misses.
func (a *IDAllocator) Allocate(ctx context.Context) (string, float64, error) {
	var cost float64
	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		id, err := a.generate()
		if err != nil {
			return "", cost, err
		}

		rec, c, err := a.store.GetLink(ctx, id)
		cost += c
		if err != nil {
			return "", cost, err
		}
		if rec == nil {
			return id, cost, nil
		}
	}
	return "", cost, ErrIDSpaceExhausted
}

func (a *IDAllocator) generate() (string, error) {
	n := a.length
	var stamp string
	if a.stamped {
		stamp = fmt.Sprintf("%0*x", stampWidth, a.now().Unix())
		n -= len(stamp)
	}

	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(idAlphabet))))
		if err != nil {
			return "", err
		}
		buf[i] = idAlphabet[idx.Int64()]
	}
	return string(buf) + stamp, nil
}
