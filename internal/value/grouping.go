package value

// Grouping is either a flat ordered sequence of rows or an ordered sequence
// of key/rows groups, recursively. It is an explicit sum: construction picks
// the shape, so consumers never have to sniff it. The structural detectors
// below remain only as an interop shim for collaborators that hand over
// already-flattened Object sequences.
type Grouping[T any] struct {
	rows    []T
	groups  []Group[T]
	grouped bool
}

// Group pairs a group key with its rows.
type Group[T any] struct {
	Key  Value
	Rows Grouping[T]
}

// Flat builds an ungrouped sequence.
func Flat[T any](rows ...T) Grouping[T] {
	return Grouping[T]{rows: rows}
}

// Grouped builds a partitioned sequence.
func Grouped[T any](groups ...Group[T]) Grouping[T] {
	return Grouping[T]{groups: groups, grouped: true}
}

func (g Grouping[T]) IsGrouped() bool { return g.grouped }

func (g Grouping[T]) Rows() []T { return g.rows }

func (g Grouping[T]) Groups() []Group[T] { return g.groups }

// GroupBy partitions rows by a key function, emitting groups ordered by the
// total order over keys. Rows with equal keys keep their input order.
func GroupBy[T any](rows []T, key func(T) Value) Grouping[T] {
	type bucket struct {
		key  Value
		rows []T
	}
	buckets := make([]*bucket, 0)
	for _, row := range rows {
		k := key(row)
		var found *bucket
		for _, b := range buckets {
			if Equal(b.key, k) {
				found = b
				break
			}
		}
		if found == nil {
			found = &bucket{key: k}
			buckets = append(buckets, found)
		}
		found.rows = append(found.rows, row)
	}
	for i := 1; i < len(buckets); i++ {
		for j := i; j > 0 && Compare(buckets[j-1].key, buckets[j].key) > 0; j-- {
			buckets[j-1], buckets[j] = buckets[j], buckets[j-1]
		}
	}
	groups := make([]Group[T], 0, len(buckets))
	for _, b := range buckets {
		groups = append(groups, Group[T]{Key: b.key, Rows: Flat(b.rows...)})
	}
	return Grouped(groups...)
}

// IsElementGroup reports whether a literal has the shape of one group record:
// an object with exactly the two fields "key" and "rows".
func IsElementGroup(v Value) bool {
	m, ok := v.Object()
	if !ok {
		return false
	}
	if len(m) != 2 {
		return false
	}
	_, hasKey := m["key"]
	_, hasRows := m["rows"]
	return hasKey && hasRows
}

// IsGrouping reports whether every element of a sequence is a group record.
// An empty sequence is a grouping by vacuous truth; callers that care must
// check emptiness themselves. This quirk is intentional and kept.
func IsGrouping(seq []Value) bool {
	for _, v := range seq {
		if !IsElementGroup(v) {
			return false
		}
	}
	return true
}
