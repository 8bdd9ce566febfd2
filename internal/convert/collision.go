// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Resolver tracks output paths claimed by source files and resolves
// collisions by appending "_dupN" to the stem. Rename patterns and suffixes
// can map distinct sources onto one output name; the resolver guarantees
// each claimed path is unique within a run. All methods are goroutine-safe.
type Resolver struct {
	mu       sync.Mutex
	owners   map[string]string // output path -> source that owns it
	counters map[string]int    // requested path -> next dup counter
}

// NewResolver returns a ready-to-use Resolver.
func NewResolver() *Resolver {
	return &Resolver{
		owners:   make(map[string]string),
		counters: make(map[string]int),
	}
}

// Resolve returns the final output path for source. If requested is
// unclaimed (or already owned by source) it is returned as-is; otherwise a
// "_dupN" variant is generated.
func (r *Resolver) Resolve(source, requested string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, taken := r.owners[requested]
	if !taken || owner == source {
		r.owners[requested] = source
		return requested
	}

	dir := filepath.Dir(requested)
	base := filepath.Base(requested)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	n := r.counters[requested]
	if n == 0 {
		n = 1
	}
	for {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_dup%d%s", stem, n, ext))
		cOwner, cTaken := r.owners[candidate]
		if !cTaken || cOwner == source {
			r.counters[requested] = n + 1
			r.owners[candidate] = source
			return candidate
		}
		n++
	}
}
