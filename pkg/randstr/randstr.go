// Package randstr generates random strings from a fixed alphabet.
package randstr

import (
	"math/rand"
	"sync"
	"time"
)

type Generator struct {
	letters []byte
	mu      sync.Mutex
	rng     *rand.Rand
}

func New(letters []byte) *Generator {
	return &Generator{
		letters: letters,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *Generator) GenerateRandomString(length int) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	b := make([]byte, length)
	for i := range b {
		b[i] = g.letters[g.rng.Intn(len(g.letters))]
	}

	return string(b)
}
