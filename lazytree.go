// Copyright 2014-2022 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build go1.18
// +build go1.18

// Package lazytree implements an in-memory binary search tree with lazy
// deletion.
//
// lazytree is an ordered set for use as an in-process data structure.
// It is not meant for persistent storage solutions.
//
// Removing a key does not unlink its node.  The node is marked inactive and
// stays in place, so the keys below it keep their position and a later
// insert of the same key simply marks it active again.  The tree therefore
// tracks two sizes:
//   - Len, the logical size: the number of active keys.
//   - HardLen, the physical size: the number of nodes, active or not.
//
// Space held by inactive nodes is only given back by Compact, which builds a
// new tree from the active keys, or by Clear.
//
// The tree is not balanced.  Inserting keys in sorted order produces a tree
// whose height equals its size, and every operation descends recursively, so
// very deep trees cost O(n) per operation and O(n) stack.
//
// Write operations are not safe for concurrent mutation by multiple
// goroutines, but Read operations are.
package lazytree

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Find, FindMin and FindMax when no active key
// satisfies the request.
var ErrNotFound = errors.New("lazytree: key not found")

// LessFunc[K] determines how to order a type 'K'.  It should implement a strict
// ordering, and should return true if within that ordering, 'a' < 'b'.
//
// If !less(a, b) && !less(b, a), a and b are treated as the same key (i.e. we
// can only hold one of either a or b in the tree).
type LessFunc[K any] func(a, b K) bool

// ItemIterator allows callers of Ascend* and Descend to iterate in-order over
// the active keys of the tree.  When this function returns false, iteration
// will stop and the associated Ascend* function will immediately return.
type ItemIterator[K any] func(key K) bool

// Ordered represents the set of types for which the '<' operator work.
type Ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64 | ~string
}

// Less[K] returns a default LessFunc that uses the '<' operator for types that support it.
func Less[K Ordered]() LessFunc[K] {
	return func(a, b K) bool { return a < b }
}

// NewOrdered creates a new, empty tree for ordered types.
func NewOrdered[K Ordered]() *Tree[K] {
	return New[K](Less[K]())
}

// New creates a new, empty tree ordered by less.
func New[K any](less LessFunc[K]) *Tree[K] {
	if less == nil {
		panic("lazytree: nil LessFunc")
	}
	return &Tree[K]{less: less}
}

// node is a vertex of the tree.
//
// Each node exclusively owns its children.  An inactive node still takes
// part in ordering and navigation; only its key is hidden.
type node[K any] struct {
	key         K
	left, right *node[K]
	active      bool
}

// Tree is a generic binary search tree with lazy deletion.
//
// The zero value is not usable; create trees with New or NewOrdered.
type Tree[K any] struct {
	root    *node[K]
	length  int // active nodes
	hardLen int // all nodes
	less    LessFunc[K]
}

// find returns the node holding key, active or not, or nil.
func (t *Tree[K]) find(n *node[K], key K) *node[K] {
	if n == nil {
		return nil
	}
	switch {
	case t.less(key, n.key):
		return t.find(n.left, key)
	case t.less(n.key, key):
		return t.find(n.right, key)
	}
	return n
}

// insert places key in the subtree rooted at n and returns the new subtree
// root.
func (t *Tree[K]) insert(n *node[K], key K) *node[K] {
	if n == nil {
		t.length++
		t.hardLen++
		return &node[K]{key: key, active: true}
	}
	switch {
	case t.less(key, n.key):
		n.left = t.insert(n.left, key)
	case t.less(n.key, key):
		n.right = t.insert(n.right, key)
	case !n.active:
		n.active = true
		t.length++
	}
	return n
}

// remove marks key inactive in the subtree rooted at n.
func (t *Tree[K]) remove(n *node[K], key K) {
	if n == nil {
		return
	}
	switch {
	case t.less(key, n.key):
		t.remove(n.left, key)
	case t.less(n.key, key):
		t.remove(n.right, key)
	case n.active:
		n.active = false
		t.length--
	}
}

// min returns the smallest active node in the subtree.
//
// It follows the left spine; once the spine ends on an inactive node the
// search continues in that node's right subtree, and a subtree holding no
// active node hands the search back to its parent.
func min[K any](n *node[K]) *node[K] {
	if n == nil {
		return nil
	}
	if m := min(n.left); m != nil {
		return m
	}
	if n.active {
		return n
	}
	return min(n.right)
}

// max returns the largest active node in the subtree.
func max[K any](n *node[K]) *node[K] {
	if n == nil {
		return nil
	}
	if m := max(n.right); m != nil {
		return m
	}
	if n.active {
		return n
	}
	return max(n.left)
}

// walk visits the subtree in order.  Inactive nodes are skipped unless all is
// set.
func walk[K any](n *node[K], all bool, visit func(K)) {
	if n == nil {
		return
	}
	walk(n.left, all, visit)
	if all || n.active {
		visit(n.key)
	}
	walk(n.right, all, visit)
}

type direction int

const (
	descend = direction(-1)
	ascend  = direction(+1)
)

type optionalKey[K any] struct {
	key   K
	valid bool
}

func optional[K any](key K) optionalKey[K] {
	return optionalKey[K]{key: key, valid: true}
}

func empty[K any]() optionalKey[K] {
	return optionalKey[K]{}
}

// iterate walks the active keys of the subtree in the given direction,
// starting at 'start' (inclusive) when it is set.  It returns false once the
// iterator asked to stop.
func (t *Tree[K]) iterate(n *node[K], dir direction, start optionalKey[K], iter ItemIterator[K]) bool {
	if n == nil {
		return true
	}
	switch dir {
	case ascend:
		below := start.valid && t.less(n.key, start.key)
		if !below {
			if !t.iterate(n.left, dir, start, iter) {
				return false
			}
			if n.active && !iter(n.key) {
				return false
			}
		}
		return t.iterate(n.right, dir, start, iter)
	case descend:
		if !t.iterate(n.right, dir, start, iter) {
			return false
		}
		if n.active && !iter(n.key) {
			return false
		}
		return t.iterate(n.left, dir, start, iter)
	}
	return true
}

// Insert adds key to the tree.  It returns true if the logical size grew:
// either a new node was created, or an inactive node holding key was made
// active again.  Inserting a key that is already active is a no-op and
// returns false.
func (t *Tree[K]) Insert(key K) bool {
	oldLen := t.length
	t.root = t.insert(t.root, key)
	return t.length != oldLen
}

// Remove marks key as deleted without unlinking its node.  It returns true if
// the logical size shrank; removing a key that is absent or already inactive
// returns false.  Remove never changes HardLen.
func (t *Tree[K]) Remove(key K) bool {
	oldLen := t.length
	t.remove(t.root, key)
	return t.length != oldLen
}

// Get looks for the key in the tree, returning it.  It returns
// (zeroValue, false) if the key is absent or inactive.
func (t *Tree[K]) Get(key K) (_ K, _ bool) {
	n := t.find(t.root, key)
	if n == nil || !n.active {
		return
	}
	return n.key, true
}

// Find is like Get, but reports absence as an error wrapping ErrNotFound.
func (t *Tree[K]) Find(key K) (K, error) {
	k, ok := t.Get(key)
	if !ok {
		return k, fmt.Errorf("find %v: %w", key, ErrNotFound)
	}
	return k, nil
}

// Has returns true if the given key is in the tree and active.
func (t *Tree[K]) Has(key K) bool {
	_, ok := t.Get(key)
	return ok
}

// Min returns the smallest active key in the tree, or (zeroValue, false) if
// there is none.
func (t *Tree[K]) Min() (_ K, _ bool) {
	if n := min(t.root); n != nil {
		return n.key, true
	}
	return
}

// Max returns the largest active key in the tree, or (zeroValue, false) if
// there is none.
func (t *Tree[K]) Max() (_ K, _ bool) {
	if n := max(t.root); n != nil {
		return n.key, true
	}
	return
}

// FindMin is like Min, but reports an empty active set as an error wrapping
// ErrNotFound.
func (t *Tree[K]) FindMin() (K, error) {
	k, ok := t.Min()
	if !ok {
		return k, fmt.Errorf("min: %w", ErrNotFound)
	}
	return k, nil
}

// FindMax is like Max, but reports an empty active set as an error wrapping
// ErrNotFound.
func (t *Tree[K]) FindMax() (K, error) {
	k, ok := t.Max()
	if !ok {
		return k, fmt.Errorf("max: %w", ErrNotFound)
	}
	return k, nil
}

// Len returns the number of active keys in the tree.
func (t *Tree[K]) Len() int {
	return t.length
}

// HardLen returns the number of nodes in the tree, including inactive ones.
func (t *Tree[K]) HardLen() int {
	return t.hardLen
}

// Deleted returns the number of inactive nodes a call to Compact would drop.
func (t *Tree[K]) Deleted() int {
	return t.hardLen - t.length
}

// Empty reports whether the tree has no active keys.  A tree made only of
// inactive nodes is empty.
func (t *Tree[K]) Empty() bool {
	return t.length == 0
}

// Height returns the number of nodes on the longest root-to-leaf path,
// counting inactive nodes.
func (t *Tree[K]) Height() int {
	return height(t.root)
}

func height[K any](n *node[K]) int {
	if n == nil {
		return 0
	}
	l, r := height(n.left), height(n.right)
	if l > r {
		return l + 1
	}
	return r + 1
}

// Clear removes every node from the tree and resets both sizes to zero.
func (t *Tree[K]) Clear() {
	t.root, t.length, t.hardLen = nil, 0, 0
}

// TraverseSoft calls v.Visit once for every active key, in ascending order.
func (t *Tree[K]) TraverseSoft(v Visitor[K]) {
	walk(t.root, false, v.Visit)
}

// TraverseHard calls v.Visit once for every key in the tree, active or not,
// in ascending order.
func (t *Tree[K]) TraverseHard(v Visitor[K]) {
	walk(t.root, true, v.Visit)
}

// Ascend calls the iterator for every active key in the tree within the range
// [first, last], until iterator returns false.
func (t *Tree[K]) Ascend(iterator ItemIterator[K]) {
	t.iterate(t.root, ascend, empty[K](), iterator)
}

// AscendGreaterOrEqual calls the iterator for every active key in the tree
// within the range [pivot, last], until iterator returns false.
func (t *Tree[K]) AscendGreaterOrEqual(pivot K, iterator ItemIterator[K]) {
	t.iterate(t.root, ascend, optional(pivot), iterator)
}

// Descend calls the iterator for every active key in the tree within the range
// [last, first], until iterator returns false.
func (t *Tree[K]) Descend(iterator ItemIterator[K]) {
	t.iterate(t.root, descend, empty[K](), iterator)
}

// Compact returns a new tree holding only the active keys of t, ordered by
// the same LessFunc.  t is left untouched.
//
// Keys are inserted into the new tree in ascending order, so its shape is the
// one plain insertion gives for sorted input, not the shape of t.  After
// Compact, the result's Len and HardLen are equal.
func (t *Tree[K]) Compact() *Tree[K] {
	out := New(t.less)
	walk(t.root, false, func(key K) {
		out.Insert(key)
	})
	return out
}
