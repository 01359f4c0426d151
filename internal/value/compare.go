package value

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collators are pooled because collate.Collator keeps an internal buffer and
// is not safe for concurrent use; Compare itself must stay safe to call from
// any goroutine.
var collators = sync.Pool{
	New: func() any { return collate.New(language.Und) },
}

func compareStrings(a, b string) int {
	c := collators.Get().(*collate.Collator)
	defer collators.Put(c)
	return c.CompareString(a, b)
}

// Compare defines a strict total order over all literals. Null sorts after
// every other value; values of different tags order by tag name.
func Compare(a, b Value) int {
	return CompareWithNormalizer(a, b, nil)
}

// CompareWithNormalizer is Compare with a custom link-path normalizer, used
// when the caller can resolve vault-relative paths to a canonical form. A nil
// normalizer is the identity.
func CompareWithNormalizer(a, b Value, normalize func(string) string) int {
	at, bt := TypeOf(a), TypeOf(b)

	// Null is the maximum element, not the minimum.
	if at == TagNull && bt == TagNull {
		return 0
	}
	if at == TagNull {
		return 1
	}
	if bt == TagNull {
		return -1
	}

	if at != bt {
		return strings.Compare(string(at), string(bt))
	}

	switch at {
	case TagNumber:
		an, _ := a.Number()
		bn, _ := b.Number()
		return cmpOrdered(an, bn)
	case TagString:
		as, _ := a.Text()
		bs, _ := b.Text()
		return compareStrings(as, bs)
	case TagBoolean:
		ab, _ := a.Bool()
		bb, _ := b.Bool()
		if ab == bb {
			return 0
		}
		if !ab {
			return -1
		}
		return 1
	case TagLink:
		al, _ := a.Link()
		bl, _ := b.Link()
		return compareLinks(al, bl, normalize)
	case TagDate:
		ad, _ := a.Date()
		bd, _ := b.Date()
		if ad.Equal(bd) {
			return 0
		}
		if ad.Before(bd) {
			return -1
		}
		return 1
	case TagDuration:
		ad, _ := a.Duration()
		bd, _ := b.Duration()
		return cmpOrdered(ad, bd)
	case TagArray:
		aa, _ := a.Array()
		ba, _ := b.Array()
		return compareArrays(aa, ba, normalize)
	case TagObject:
		ao, _ := a.Object()
		bo, _ := b.Object()
		return compareObjects(ao, bo, normalize)
	}
	// html and function are unorderable opaque tags
	return 0
}

func cmpOrdered[T ~int64 | ~float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareLinks(a, b Link, normalize func(string) string) int {
	if normalize == nil {
		normalize = func(s string) string { return s }
	}
	if c := strings.Compare(normalize(a.Path), normalize(b.Path)); c != 0 {
		return c
	}
	if c := strings.Compare(string(a.Type), string(b.Type)); c != 0 {
		return c
	}
	// A link with a subpath sorts after one without.
	if a.Subpath == "" && b.Subpath != "" {
		return -1
	}
	if a.Subpath != "" && b.Subpath == "" {
		return 1
	}
	return strings.Compare(a.Subpath, b.Subpath)
}

func compareArrays(a, b []Value, normalize func(string) string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := CompareWithNormalizer(a[i], b[i], normalize); c != 0 {
			return c
		}
	}
	return cmpOrdered(float64(len(a)), float64(len(b)))
}

// compareObjects orders by the sorted key sequence first, then by each key's
// value in sorted-key order. Objects with differing key sets never reach the
// value comparison.
func compareObjects(a, b map[string]Value, normalize func(string) string) int {
	aKeys := sortedKeys(a)
	bKeys := sortedKeys(b)
	if c := compareKeySeq(aKeys, bKeys); c != 0 {
		return c
	}
	for _, k := range aKeys {
		if c := CompareWithNormalizer(a[k], b[k], normalize); c != 0 {
			return c
		}
	}
	return 0
}

func compareKeySeq(a, b []string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := compareStrings(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmpOrdered(float64(len(a)), float64(len(b)))
}

func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether two literals compare as the same position in the
// total order.
func Equal(a, b Value) bool {
	return Compare(a, b) == 0
}

// SortValues sorts a slice of literals in place by the total order. The sort
// is stable so equal-comparing opaque values keep their input order.
func SortValues(vs []Value) {
	sort.SliceStable(vs, func(i, j int) bool {
		return Compare(vs[i], vs[j]) < 0
	})
}
