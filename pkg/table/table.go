package table

// TableSize is the number of slots of the marker table, one per uint16 hash.
const TableSize = 1 << 16

// PrefixTable stores values keyed by short byte strings and finds all the
// keys which are a prefix of a given input in a single pass over it.
//
// Every prefix of every key is hashed into a 64K marker table. A walk over an
// input stops as soon as the hash of the bytes seen so far hits an empty slot,
// so inputs which share no prefix with any key are rejected after a byte or two.
type PrefixTable[T any] struct {
	table [TableSize]byte
	elems map[string]T

	// maxKeyLen bounds walks: no key can match past this length.
	maxKeyLen int
}

const (
	// none marks a hash no key prefix maps to.
	none = iota
	// presentMarker marks a hash of a proper prefix of some key.
	presentMarker
	// elemMarker marks a hash of a complete key.
	elemMarker
)

func New[T any]() *PrefixTable[T] {
	return &PrefixTable[T]{
		elems: make(map[string]T),
	}
}

func hashStep(h uint16, b byte) uint16 {
	return (h << 2) + uint16(b)
}

// Insert associates v with key, replacing any previous value.
//
// The hash only retains information about the last 8 bytes of a prefix,
// so longer keys produce collisions. Collisions only cost extra map lookups
// during walks, never wrong results.
func (t *PrefixTable[T]) Insert(key []byte, v T) {
	var h uint16
	for _, b := range key {
		h = hashStep(h, b)
		// never downgrade an elemMarker set by a shorter key
		t.table[h] = max(t.table[h], presentMarker)
	}
	t.table[h] = elemMarker
	t.elems[string(key)] = v
	t.maxKeyLen = max(t.maxKeyLen, len(key))
}

func (t *PrefixTable[T]) Get(key []byte) (T, bool) {
	v, found := t.elems[string(key)]
	return v, found
}

// Walk calls onMatch, from the shortest to the longest, with the value of
// every key which is a prefix of input. Returning true from onMatch stops the walk.
//
// With keys "ab", "abc" and "b", walking "abcd" visits "ab" and "abc",
// while walking "ba" only visits "b".
func (t *PrefixTable[T]) Walk(input []byte, onMatch func(T) bool) {
	if len(input) > t.maxKeyLen {
		input = input[:t.maxKeyLen]
	}

	var h uint16
	for i, b := range input {
		h = hashStep(h, b)

		switch t.table[h] {
		case none:
			return
		case elemMarker:
			if v, ok := t.elems[string(input[:i+1])]; ok && onMatch(v) {
				return
			}
		}
	}
}

// Size returns the number of keys stored in the table.
func (t *PrefixTable[T]) Size() int {
	return len(t.elems)
}
