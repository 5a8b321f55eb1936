package tracker

import (
	"strconv"
	"strings"
)

// ParseFragment derives a slide index from a location value: the integer
// after the last '#'. A missing or non-numeric fragment is slide 0. Both the
// observed path and the synchronous fallback path must use this exact rule,
// otherwise the two sources oscillate.
func ParseFragment(location string) int {
	i := strings.LastIndexByte(location, '#')
	if i < 0 {
		return 0
	}
	n, err := strconv.Atoi(location[i+1:])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SlideIndexResolver tracks the active slide index from two sources: the
// observed embedded-frame location attribute, and a synchronous re-read
// inside the scroll handler that guards against missed mutation
// notifications. On disagreement the most recent fallback value wins.
type SlideIndexResolver struct {
	index int
}

// Observe records the index parsed from an observed location mutation.
func (r *SlideIndexResolver) Observe(location string) int {
	r.index = ParseFragment(location)
	return r.index
}

// Resolve re-derives the index from the current location value, overriding
// the tracked index if it disagrees. changed reports whether the override
// corrected a stale value.
func (r *SlideIndexResolver) Resolve(location string) (index int, changed bool) {
	index = ParseFragment(location)
	changed = index != r.index
	r.index = index
	return index, changed
}

// Index returns the last resolved slide index.
func (r *SlideIndexResolver) Index() int { return r.index }
