package interp

import "github.com/vizij-ai/vizij-go-runtime/engine/value"

// quantizeSteps is the resolution t is quantized to for cache keys: one
// part in 10000 of the segment.
const quantizeSteps = 10000

// cacheKey identifies a memoized sample: the variant, the hashes of the
// bounding values, a hash of the segment's own parameters (tangent
// handles, step threshold, spring parameters), and t quantized to 1/10000
// of the segment. Keying on value hashes rather than the values themselves
// keeps the key comparable and lets distinct Before/After neighbors alias
// into the same entry when they don't affect the chosen variant.
type cacheKey struct {
	variant string
	startH  uint64
	endH    uint64
	paramsH uint64
	quantT  int32
}

// Cache is a bounded, size-limited memo of Segment samples keyed on
// (variant, hash(start), hash(end), hash(segment params), quantized t). A
// hit returns what a miss would have computed for the same segment at a t
// in the same 1/10000 quantization step. Eviction is oldest-first once the
// capacity is reached.
type Cache struct {
	capacity int
	entries  map[cacheKey]value.Value
	order    []cacheKey

	Hits   uint64
	Misses uint64
}

// NewCache returns a Cache bounded to capacity entries. A capacity of 0 or
// less disables caching; Key reports every segment as non-cacheable.
func NewCache(capacity int) *Cache {
	return &Cache{
		capacity: capacity,
		entries:  make(map[cacheKey]value.Value, capacity),
	}
}

// Key derives the cache key for seg. The second return value is false when
// caching is disabled or the segment's kind can't be safely memoized
// (Before/After neighbors participate in CatmullRom/BSpline but aren't part
// of the key, so those variants are excluded from caching).
func (c *Cache) Key(seg Segment) (cacheKey, bool) {
	if c == nil || c.capacity <= 0 {
		return cacheKey{}, false
	}
	switch seg.Variant {
	case "CatmullRom", "BSpline":
		return cacheKey{}, false
	}
	t := seg.T
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	params := []float32{seg.StepThreshold}
	for _, h := range []*[2]float32{seg.TangentOut, seg.TangentIn} {
		if h == nil {
			params = append(params, 0)
		} else {
			params = append(params, 1, h[0], h[1])
		}
	}
	if sp := seg.SpringParams; sp != nil {
		params = append(params, 1, sp[0], sp[1], sp[2])
	}
	return cacheKey{
		variant: seg.Variant,
		startH:  seg.Start.HashKey(),
		endH:    seg.End.HashKey(),
		paramsH: value.VectorVal(params).HashKey(),
		quantT:  int32(t * quantizeSteps),
	}, true
}

// Get looks up key, recording a hit or miss.
func (c *Cache) Get(key cacheKey) (value.Value, bool) {
	v, ok := c.entries[key]
	if ok {
		c.Hits++
	} else {
		c.Misses++
	}
	return v, ok
}

// Put stores v under key, evicting the oldest entry first if the cache is
// at capacity.
func (c *Cache) Put(key cacheKey, v value.Value) {
	if _, exists := c.entries[key]; !exists {
		if len(c.order) >= c.capacity {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = v
}

// Len returns the number of entries currently cached.
func (c *Cache) Len() int {
	return len(c.entries)
}
