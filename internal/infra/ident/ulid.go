package ident

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator issues monotonic ULIDs; ids made within the same millisecond
// still sort in creation order.
type ULIDGenerator struct {
	mu      sync.Mutex
	now     func() time.Time
	entropy *ulid.MonotonicEntropy
}

func NewULIDGenerator() *ULIDGenerator {
	return NewULIDGeneratorWith(time.Now, rand.Reader)
}

func NewULIDGeneratorWith(now func() time.Time, entropy io.Reader) *ULIDGenerator {
	return &ULIDGenerator{now: now, entropy: ulid.Monotonic(entropy, 0)}
}

func (g *ULIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(g.now().UTC()), g.entropy)
	if err != nil {
		return "", fmt.Errorf("generate ulid: %w", err)
	}
	return id.String(), nil
}
