package repository

// PairKey builds the canonical key for an unordered pair of user ids. The
// unique index on this key is what guarantees at most one conversation per
// pair, regardless of which side creates it.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + ":" + b
}
