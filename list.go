// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package civo

// Sll is a singly-linked list node carrying a value of type T. It is
// intrusive in spirit even though it is a standalone generic node rather
// than an embedded field: callers link nodes by setting Next, the same way
// the original's Sll_t chained raw pointers.
type Sll[T any] struct {
	Next  *Sll[T]
	Value T
}

// SllPush prepends node to the list headed by head and returns the new
// head.
func SllPush[T any](head *Sll[T], node *Sll[T]) *Sll[T] {
	node.Next = head
	return node
}

// SllPop removes and returns the head node, and the new head. It returns
// (nil, nil) on an empty list.
func SllPop[T any](head *Sll[T]) (*Sll[T], *Sll[T]) {
	if head == nil {
		return nil, nil
	}
	return head, head.Next
}

// SllReverse reverses the list headed by head in place, node by node, and
// returns the new head. Applying it twice restores the original order and
// node identities.
func SllReverse[T any](head *Sll[T]) *Sll[T] {
	var prev *Sll[T]
	for head != nil {
		next := head.Next
		head.Next = prev
		prev = head
		head = next
	}
	return prev
}

// Dll is a doubly-linked list node, the building block of DllRoot. Prev is
// nil for the list's head node.
type Dll[T any] struct {
	prev, next *Dll[T]
	Value      T
}

// Next returns the next node, or nil at the tail.
func (d *Dll[T]) Next() *Dll[T] { return d.next }

// Prev returns the previous node, or nil at the head.
func (d *Dll[T]) Prev() *Dll[T] { return d.prev }

// InsertAfter splices n in as to's immediate successor, leaving to.Prev
// untouched — the same asymmetric link the original's Dll_add(to, n)
// performs. Callers building a DllRoot-backed list should prefer
// DllRoot.Add/Remove, which keep both directions and the root's length
// counter consistent; InsertAfter is for splicing a node into an existing
// chain outside of a DllRoot.
func (d *Dll[T]) InsertAfter(n *Dll[T]) {
	n.next = d.next
	n.prev = d
	if d.next != nil {
		d.next.prev = n
	}
	d.next = n
}

// DllRoot is a LIFO doubly-linked list: Add always inserts at the front and
// Pop always removes from the front, mirroring DllRoot_add/DllRoot_pop in
// the original — a non-circular list whose head's Prev is always nil.
type DllRoot[T any] struct {
	start *Dll[T]
	n     int
}

// Len returns the number of nodes currently in the list.
func (r *DllRoot[T]) Len() int { return r.n }

// Start returns the head node, or nil if the list is empty.
func (r *DllRoot[T]) Start() *Dll[T] { return r.start }

// Add inserts a new node carrying value at the front of the list and
// returns it.
func (r *DllRoot[T]) Add(value T) *Dll[T] {
	node := &Dll[T]{Value: value, next: r.start}
	if r.start != nil {
		r.start.prev = node
	}
	r.start = node
	r.n++
	return node
}

// Pop removes and returns the front node's value. ok is false if the list
// is empty.
func (r *DllRoot[T]) Pop() (value T, ok bool) {
	if r.start == nil {
		return value, false
	}
	node := r.start
	r.start = node.next
	if r.start != nil {
		r.start.prev = nil
	}
	node.next = nil
	r.n--
	return node.Value, true
}

// Remove detaches node from the list in O(1). It is the caller's
// responsibility to ensure node actually belongs to r.
func (r *DllRoot[T]) Remove(node *Dll[T]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		r.start = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	}
	node.prev, node.next = nil, nil
	r.n--
}
