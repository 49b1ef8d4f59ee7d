package links

// Pair is one rendered entry of a Collection.
type Pair struct {
	Key    string
	Markup string
}

// Collection is an ordered key -> markup mapping as exchanged with the host's
// link filter hooks. Setting an existing key keeps its position; new keys are
// appended, so host-supplied entries retain their relative order and
// configured links follow in registration order.
type Collection struct {
	keys   []string
	markup map[string]string
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{markup: make(map[string]string)}
}

// FromPairs builds a collection preserving the order of pairs. Duplicate keys
// keep the first position and the last markup.
func FromPairs(pairs ...Pair) *Collection {
	c := NewCollection()
	for _, p := range pairs {
		c.Set(p.Key, p.Markup)
	}
	return c
}

// Set stores markup under key, overwriting in place when the key exists.
func (c *Collection) Set(key, markup string) {
	if c.markup == nil {
		c.markup = make(map[string]string)
	}
	if _, ok := c.markup[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.markup[key] = markup
}

// Get returns the markup stored under key.
func (c *Collection) Get(key string) (string, bool) {
	if c == nil || c.markup == nil {
		return "", false
	}
	markup, ok := c.markup[key]
	return markup, ok
}

// Has reports whether key is present.
func (c *Collection) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Keys returns the keys in collection order.
func (c *Collection) Keys() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.keys...)
}

// Pairs returns the entries in collection order.
func (c *Collection) Pairs() []Pair {
	if c == nil {
		return nil
	}
	pairs := make([]Pair, 0, len(c.keys))
	for _, key := range c.keys {
		pairs = append(pairs, Pair{Key: key, Markup: c.markup[key]})
	}
	return pairs
}

// Clone returns an independent copy. Cloning nil yields an empty collection.
func (c *Collection) Clone() *Collection {
	out := NewCollection()
	if c == nil {
		return out
	}
	for _, key := range c.keys {
		out.Set(key, c.markup[key])
	}
	return out
}
