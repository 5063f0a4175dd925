package scheem

import (
	"encoding/binary"

	"github.com/glycerine/blake2b"
)

// Blake2bUint64 returns an 8 byte BLAKE2b cryptographic
// hash of the raw.
func Blake2bUint64(raw []byte) uint64 {
	cfg := &blake2b.Config{Size: 8}
	h, err := blake2b.New(cfg)
	panicOn(err)
	h.Write(raw)
	by := h.Sum(nil)
	return binary.LittleEndian.Uint64(by[:8])
}

const DefaultParseCacheSize = 256

type parsed struct {
	src string
	xs  []Sexp
}

// ParseCache remembers the trees parsed from recently seen source text,
// keyed by its hash. Trees are never mutated by evaluation, so the same
// tree can be handed out to any number of evaluations.
type ParseCache struct {
	max     int
	entries map[uint64]*parsed

	Hits   int
	Misses int
}

func NewParseCache(max int) *ParseCache {
	return &ParseCache{
		max:     max,
		entries: make(map[uint64]*parsed),
	}
}

func (c *ParseCache) Len() int {
	return len(c.entries)
}

// Parse returns the expressions in src, parsing only on a miss. Parse
// errors are not cached.
func (c *ParseCache) Parse(src string) ([]Sexp, error) {
	key := Blake2bUint64([]byte(src))
	if p, ok := c.entries[key]; ok && p.src == src {
		c.Hits++
		Q("parse cache hit for %x", key)
		return p.xs, nil
	}
	c.Misses++
	xs, err := ParseString(src)
	if err != nil {
		return nil, err
	}
	if c.max <= 0 {
		return xs, nil
	}
	if len(c.entries) >= c.max {
		// start over rather than track recency
		c.entries = make(map[uint64]*parsed)
	}
	c.entries[key] = &parsed{src: src, xs: xs}
	return xs, nil
}
