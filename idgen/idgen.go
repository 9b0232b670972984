// Package idgen mints string identifiers of the form "<kind>_<suffix>".
//
// A Generator built with WithSeed produces the same id sequence for the same
// call sequence, which keeps deals reproducible in tests and replays. Without
// a seed the suffix comes from a random UUID.
package idgen

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// EntityKind prefixes every generated id.
type EntityKind string

const (
	KindCard   EntityKind = "card"
	KindPlayer EntityKind = "player"
	KindTeam   EntityKind = "team"
	KindRound  EntityKind = "round"
	KindTable  EntityKind = "table"
)

// Generator produces ids. The zero value is not usable; call New.
type Generator struct {
	mu      sync.Mutex
	seeded  bool
	seed    int64
	rng     *rand.Rand
	counter uint64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes the generator deterministic.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seeded = true
		g.seed = seed
	}
}

// New creates a generator. Without WithSeed the ids are UUID based.
func New(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	if g.seeded {
		g.rng = rand.New(rand.NewSource(g.seed))
	}
	return g
}

// Seeded reports whether the generator was built with WithSeed.
func (g *Generator) Seeded() bool {
	return g.seeded
}

// GenerateID returns the next id for kind. It panics if kind is empty or
// contains anything other than lower-case letters and digits.
func (g *Generator) GenerateID(kind EntityKind) string {
	if !validKind(kind) {
		panic(fmt.Sprintf("idgen: invalid entity kind %q", kind))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.counter++
	if !g.seeded {
		return string(kind) + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	draw := strconv.FormatUint(uint64(g.rng.Int63()), 36)
	return string(kind) + "_" + strconv.FormatUint(g.counter, 36) + zeroPad(draw)
}

// drawWidth is the base-36 length of the largest Int63 draw. Padding every
// draw to it keeps the counter and draw split unambiguous.
const drawWidth = 13

func zeroPad(s string) string {
	if len(s) >= drawWidth {
		return s
	}
	return strings.Repeat("0", drawWidth-len(s)) + s
}

func validKind(kind EntityKind) bool {
	if kind == "" {
		return false
	}
	for _, r := range kind {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

var defaultGenerator = New()

// GenerateID mints an id from the process-wide unseeded generator.
func GenerateID(kind EntityKind) string {
	return defaultGenerator.GenerateID(kind)
}
