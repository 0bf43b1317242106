// Package imapset compacts identifier selections into IMAP sequence sets
// ("2:5,7,10:12") and parses them back.
package imapset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/kdepim/akonadi.go/pkg/constants"
)

// Range is an inclusive interval of identifiers.
type Range struct {
	Begin int64
	End   int64
}

// IsSingle reports whether the range holds exactly one identifier.
func (r Range) IsSingle() bool {
	return r.Begin == r.End
}

// Size returns the number of identifiers in the range, capped at math.MaxInt64.
func (r Range) Size() int64 {
	// uint64 keeps the difference exact for any End >= Begin.
	d := uint64(r.End) - uint64(r.Begin)
	if d >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(d) + 1
}

func (r Range) String() string {
	if r.IsSingle() {
		return strconv.FormatInt(r.Begin, 10)
	}
	return strconv.FormatInt(r.Begin, 10) + ":" + strconv.FormatInt(r.End, 10)
}

// ImapSet is an ordered set of merged, non-overlapping ranges.
//
// Negative identifiers are never members; 0 is a valid member.
// The zero value is an empty set ready for use.
type ImapSet struct {
	ranges []Range
}

// New returns a set holding ids.
func New(ids ...int64) ImapSet {
	var s ImapSet
	s.Add(ids...)
	return s
}

// Add merges ids into the set. Duplicates collapse and negative ids are dropped.
func (s *ImapSet) Add(ids ...int64) {
	if len(ids) == 0 {
		return
	}
	sorted := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id >= 0 {
			sorted = append(sorted, id)
		}
	}
	if len(sorted) == 0 {
		return
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	ranges := make([]Range, 0, len(s.ranges)+1)
	ranges = append(ranges, s.ranges...)
	cur := Range{Begin: sorted[0], End: sorted[0]}
	for _, id := range sorted[1:] {
		if id-1 <= cur.End {
			if id > cur.End {
				cur.End = id
			}
			continue
		}
		ranges = append(ranges, cur)
		cur = Range{Begin: id, End: id}
	}
	ranges = append(ranges, cur)
	s.ranges = normalize(ranges)
}

// AddRange merges the inclusive interval [begin, end] into the set.
// Bounds are swapped when given in descending order; the negative part of an
// interval is dropped.
func (s *ImapSet) AddRange(begin, end int64) {
	if begin > end {
		begin, end = end, begin
	}
	if end < 0 {
		return
	}
	if begin < 0 {
		begin = 0
	}
	s.ranges = normalize(append(append([]Range(nil), s.ranges...), Range{Begin: begin, End: end}))
}

// normalize sorts ranges by start and merges overlapping or adjacent ones.
func normalize(ranges []Range) []Range {
	if len(ranges) < 2 {
		return ranges
	}
	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].Begin == ranges[j].Begin {
			return ranges[i].End < ranges[j].End
		}
		return ranges[i].Begin < ranges[j].Begin
	})

	merged := ranges[:1]
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		// r.Begin >= 0, so r.Begin-1 cannot overflow.
		if r.Begin-1 <= last.End {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// Ranges returns a copy of the ranges in ascending order.
func (s ImapSet) Ranges() []Range {
	return append([]Range(nil), s.ranges...)
}

// IDs expands the set into its identifiers in ascending order. The result holds
// Len() elements, so callers decoding untrusted sets should check Len first.
func (s ImapSet) IDs() []int64 {
	var ids []int64
	for _, r := range s.ranges {
		for id := r.Begin; ; id++ {
			ids = append(ids, id)
			if id == r.End {
				break
			}
		}
	}
	return ids
}

// Contains reports whether id is a member of the set.
func (s ImapSet) Contains(id int64) bool {
	i := sort.Search(len(s.ranges), func(i int) bool { return s.ranges[i].End >= id })
	return i < len(s.ranges) && s.ranges[i].Begin <= id
}

// Len returns the number of identifiers in the set, capped at math.MaxInt64.
func (s ImapSet) Len() int64 {
	var n int64
	for _, r := range s.ranges {
		size := r.Size()
		if n > math.MaxInt64-size {
			return math.MaxInt64
		}
		n += size
	}
	return n
}

// IsEmpty reports whether the set has no members.
func (s ImapSet) IsEmpty() bool {
	return len(s.ranges) == 0
}

// String returns the sequence set form, e.g. "3:5,7,10". The empty set is "".
func (s ImapSet) String() string {
	var b strings.Builder
	for i, r := range s.ranges {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(r.String())
	}
	return b.String()
}

// ToWireForm returns the sequence set form as bytes.
func (s ImapSet) ToWireForm() []byte {
	return []byte(s.String())
}

// Parse decodes a sequence set token. The empty token is the empty set.
func Parse(token string) (ImapSet, error) {
	var s ImapSet
	if token == "" {
		return s, nil
	}

	ranges := make([]Range, 0, strings.Count(token, ",")+1)
	for _, piece := range strings.Split(token, ",") {
		lo, hi, found := strings.Cut(piece, ":")
		begin, err := parseID(lo)
		if err != nil {
			return ImapSet{}, fmt.Errorf("%w: %q: %v", constants.ErrMalformedSet, token, err)
		}
		end := begin
		if found {
			end, err = parseID(hi)
			if err != nil {
				return ImapSet{}, fmt.Errorf("%w: %q: %v", constants.ErrMalformedSet, token, err)
			}
		}
		if end < begin {
			return ImapSet{}, fmt.Errorf("%w: %q: range %s ends before it starts", constants.ErrMalformedSet, token, piece)
		}
		ranges = append(ranges, Range{Begin: begin, End: end})
	}
	s.ranges = normalize(ranges)
	return s, nil
}

func parseID(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty identifier")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("non-numeric identifier %q", s)
		}
	}
	return strconv.ParseInt(s, 10, 64)
}
