// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package textindex

import (
	"container/heap"
	"sort"
)

// neighborHeap keeps the weakest retained neighbor at the root.
type neighborHeap []Neighbor

func (h neighborHeap) Len() int           { return len(h) }
func (h neighborHeap) Less(i, j int) bool { return ranksAbove(h[j], h[i]) }
func (h neighborHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *neighborHeap) Push(x any) {
	*h = append(*h, x.(Neighbor))
}

func (h *neighborHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// topK selects the k best neighbors in O(n log k).
type topK struct {
	k int
	h neighborHeap
}

func newTopK(k int) *topK {
	return &topK{k: k, h: make(neighborHeap, 0, k)}
}

func (t *topK) offer(n Neighbor) {
	if len(t.h) < t.k {
		heap.Push(&t.h, n)
		return
	}
	if ranksAbove(n, t.h[0]) {
		t.h[0] = n
		heap.Fix(&t.h, 0)
	}
}

// sorted drains the heap into best-first order.
func (t *topK) sorted() []Neighbor {
	out := make([]Neighbor, len(t.h))
	copy(out, t.h)
	sort.Slice(out, func(a, b int) bool { return ranksAbove(out[a], out[b]) })
	return out
}
