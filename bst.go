// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package civo

// cbstNode is one node of a CBst. The node itself is an ordinary Go value;
// its key bytes are copied into an arena allocation (align 1) that is never
// individually freed — it is reclaimed when the arena is dropped.
type cbstNode struct {
	left, right *cbstNode
	key         Slc
	value       any
}

// CBst is a binary search tree keyed on byte-lexicographic order (Slc.Cmp).
//
// Unlike a conventional BST, CBst mirrors the usual descent direction:
// when a probe's key compares less than a node's key (cmp<0), the search
// descends into the node's right child rather than its left. Equal keys
// are never stored twice (see Add). This "latest revision"
// convention is deliberate — see the package's design notes — and means a
// CBst should not be read as sorted left-to-right the way a textbook BST
// is; Walk still visits every key exactly once.
type CBst struct {
	root *cbstNode
	n    int
	a    Arena
}

// NewCBst returns an empty CBst whose nodes are allocated from a.
func NewCBst(a Arena) *CBst { return &CBst{a: a} }

// Len returns the number of keys in the tree.
func (t *CBst) Len() int { return t.n }

// Add inserts key with value if key is absent. It never replaces an
// existing key's value; if key already collides with a node, Add leaves
// that node untouched and returns ErrCollision so the caller can decide
// what to do (the colliding value can be read back with Find). It returns
// ErrCapacity if a new node cannot be allocated.
func (t *CBst) Add(key Slc, value any) error {
	if t.root == nil {
		node, ok := t.newNode(key, value)
		if !ok {
			return ErrCapacity
		}
		t.root = node
		t.n++
		return nil
	}
	cur := t.root
	for {
		c := key.Cmp(cur.key)
		switch {
		case c == 0:
			return ErrCollision
		case c < 0:
			if cur.right == nil {
				node, ok := t.newNode(key, value)
				if !ok {
					return ErrCapacity
				}
				cur.right = node
				t.n++
				return nil
			}
			cur = cur.right
		default:
			if cur.left == nil {
				node, ok := t.newNode(key, value)
				if !ok {
					return ErrCapacity
				}
				cur.left = node
				t.n++
				return nil
			}
			cur = cur.left
		}
	}
}

func (t *CBst) newNode(key Slc, value any) (*cbstNode, bool) {
	raw, ok := t.a.Alloc(len(key.Bytes()), 1)
	if !ok {
		return nil, false
	}
	copy(raw, key.Bytes())
	return &cbstNode{key: NewSlc(raw), value: value}, true
}

// Find returns the value stored under key, following the same cmp<0 ->
// right descent Add uses.
func (t *CBst) Find(key Slc) (value any, ok bool) {
	cur := t.root
	for cur != nil {
		c := key.Cmp(cur.key)
		switch {
		case c == 0:
			return cur.value, true
		case c < 0:
			cur = cur.right
		default:
			cur = cur.left
		}
	}
	return nil, false
}

// Walk visits every (key, value) pair in the tree in left-root-right
// order, stopping early if fn returns false.
func (t *CBst) Walk(fn func(key Slc, value any) bool) {
	var visit func(*cbstNode) bool
	visit = func(n *cbstNode) bool {
		if n == nil {
			return true
		}
		if !visit(n.left) {
			return false
		}
		if !fn(n.key, n.value) {
			return false
		}
		return visit(n.right)
	}
	visit(t.root)
}
