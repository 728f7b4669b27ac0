package feature

import "sort"

// CircularIndex answers "which spans cover position p" using a sorted-slice
// interval tree. Spans that cross the origin are stored as two pieces.
// The index is built once and never modified.
type CircularIndex struct {
	total     int
	intervals []indexEntry
	maxEnd    []int // maxEnd[i] = max(end) for intervals[:i+1]
}

type indexEntry struct {
	start    int
	end      int
	interval *Interval
}

// BuildCircularIndex indexes spans on a domain of total positions.
func BuildCircularIndex(total int, spans []*Interval) *CircularIndex {
	idx := &CircularIndex{total: total}
	if len(spans) == 0 {
		return idx
	}

	entries := make([]indexEntry, 0, len(spans))
	for _, iv := range spans {
		if iv.Wraps() {
			entries = append(entries,
				indexEntry{start: iv.start, end: total, interval: iv},
				indexEntry{start: 0, end: iv.end, interval: iv})
			continue
		}
		entries = append(entries, indexEntry{start: iv.start, end: iv.end, interval: iv})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].start < entries[j].start
	})

	maxEnd := make([]int, len(entries))
	maxEnd[0] = entries[0].end
	for i := 1; i < len(entries); i++ {
		maxEnd[i] = max(entries[i].end, maxEnd[i-1])
	}

	idx.intervals = entries
	idx.maxEnd = maxEnd
	return idx
}

// FindOverlaps returns every span whose [Start, End] range contains pos,
// in order of increasing start. Positions are taken modulo the domain size.
func (x *CircularIndex) FindOverlaps(pos int) []*Interval {
	if len(x.intervals) == 0 {
		return nil
	}
	if x.total > 0 {
		pos %= x.total
		if pos < 0 {
			pos += x.total
		}
	}

	// hi is the first index with start > pos; candidates are [0, hi).
	hi := sort.Search(len(x.intervals), func(i int) bool {
		return x.intervals[i].start > pos
	})

	seen := make(map[*Interval]bool)
	var result []*Interval
	for i := hi - 1; i >= 0; i-- {
		// No interval from 0..i can contain pos once maxEnd drops below it.
		if x.maxEnd[i] < pos {
			break
		}
		e := x.intervals[i]
		if e.end >= pos && !seen[e.interval] {
			seen[e.interval] = true
			result = append(result, e.interval)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].start < result[j].start
	})
	return result
}
