// SPDX-License-Identifier: MIT

package graph

import "testing"

func TestSingletonIsSingleton(t *testing.T) {
	c := singleton(nil, slotRoot)
	if !c.isSingleton() {
		t.Fatal("a freshly made ring of one must be its own singleton")
	}
	if c.prev != c || c.next != c {
		t.Fatalf("singleton ring must point to itself, got prev=%p next=%p self=%p", c.prev, c.next, c)
	}
}

func TestMergeNilHandling(t *testing.T) {
	c := singleton(nil, slotRoot)
	if got := merge(nil, c); got != c {
		t.Errorf("merge(nil, c) = %p, want c (%p)", got, c)
	}
	if got := merge(c, nil); got != c {
		t.Errorf("merge(c, nil) = %p, want c (%p)", got, c)
	}
}

func TestMergeCombinesTwoRings(t *testing.T) {
	a := singleton(nil, slotFun)
	b := singleton(nil, slotArg)
	merged := merge(a, b)
	cells := eachParent(merged)
	if len(cells) != 2 {
		t.Fatalf("merged ring has %d cells, want 2", len(cells))
	}
	seen := map[*ParentCell]bool{}
	for _, c := range cells {
		seen[c] = true
	}
	if !seen[a] || !seen[b] {
		t.Fatal("merged ring must contain both original cells")
	}
	if a.isSingleton() || b.isSingleton() {
		t.Fatal("neither original cell should still look like a singleton once merged")
	}
}

func TestRemoveLastCellYieldsNilHead(t *testing.T) {
	c := singleton(nil, slotRoot)
	if got := remove(c, c); got != nil {
		t.Errorf("remove(c, c) on a singleton ring = %p, want nil", got)
	}
}

func TestRemoveOneOfTwoKeepsRemainder(t *testing.T) {
	a := singleton(nil, slotFun)
	b := singleton(nil, slotArg)
	head := merge(a, b)

	newHead := remove(head, a)
	if newHead == nil {
		t.Fatal("removing one of two cells must leave the other behind")
	}
	remaining := eachParent(newHead)
	if len(remaining) != 1 || remaining[0] != b {
		t.Fatalf("remaining ring = %v, want [b]", remaining)
	}
	if !b.isSingleton() {
		t.Fatal("b must be a singleton again once a is removed")
	}
}

func TestRemoveHeadReturnsNextAsNewHead(t *testing.T) {
	a := singleton(nil, slotFun)
	b := singleton(nil, slotArg)
	head := merge(a, b) // head == a

	newHead := remove(head, a)
	if newHead != b {
		t.Fatalf("removing the head cell must hand back the next cell as the new head, got %p want %p", newHead, b)
	}
}

func TestEachParentVisitsEveryCellOnce(t *testing.T) {
	a := singleton(nil, slotFun)
	b := singleton(nil, slotArg)
	c := singleton(nil, slotBod)
	head := merge(merge(a, b), c)

	got := eachParent(head)
	if len(got) != 3 {
		t.Fatalf("eachParent returned %d cells, want 3", len(got))
	}
	seen := map[*ParentCell]bool{}
	for _, cell := range got {
		if seen[cell] {
			t.Fatalf("cell %p visited twice", cell)
		}
		seen[cell] = true
	}
	for _, want := range []*ParentCell{a, b, c} {
		if !seen[want] {
			t.Fatalf("cell %p missing from eachParent result", want)
		}
	}
}

func TestEachParentNilHead(t *testing.T) {
	if got := eachParent(nil); got != nil {
		t.Errorf("eachParent(nil) = %v, want nil", got)
	}
}
