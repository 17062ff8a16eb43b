// Package merge implements the key-based reconciliation of two datasets.
//
// The primary dataset (A) is left-joined against the secondary dataset (B)
// on a single key column. Every primary row lands in exactly one partition:
// merged, when some secondary row has the same normalized key, or unmatched
// otherwise. Both partitions keep the primary dataset's row order.
//
// # Choosing a key
//
// Candidate keys are the fields present in both datasets' first rows:
//
//	cols := merge.Intersect(primary, secondary)
//	key, ok := merge.DefaultKey(cols)
//
// # Merging
//
//	rs, err := merge.Merge(primary, secondary, key)
//	if errors.Is(err, errors.ErrInvalidKey) {
//	    // key was empty or not a field of the primary dataset
//	}
//	fmt.Println(rs.MergedCount, rs.UnmatchedCount)
//
// # Matching rules
//
// Key values are compared after NormalizeKey: nil becomes the empty string,
// numbers are printed in their shortest decimal form, and surrounding
// whitespace is trimmed. The comparison is case-sensitive. When several
// secondary rows share a normalized key the first one wins; later duplicates
// are ignored. A merged row is the primary row with the secondary row's
// fields laid over it, the secondary value winning on name collisions.
//
// Rows whose key normalizes to the empty string are governed by
// EmptyKeyPolicy. The default, EmptyKeysMatch, treats "" like any other
// value, so blank keys on both sides match each other.
//
// Merging is a pure function: the inputs are never modified and the same
// inputs always produce the same ResultSet.
package merge
