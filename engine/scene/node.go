// Package scene holds the scene graph: named nodes in an ordered tree, renderable objects, and the
// manager that owns the single root.
package scene

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidTopology is returned when an AddChild would create a cycle or re-parent the root.
	ErrInvalidTopology = errors.New("scene: invalid topology")

	// ErrRootExists is returned by CreateRootNode when the manager already has a root.
	ErrRootExists = errors.New("scene: root already exists")

	// ErrNoRoot is returned by traversals on a manager without a root.
	ErrNoRoot = errors.New("scene: no root node")
)

// node is the structural part shared by plain nodes and objects. The parent pointer is a
// non-owning back-reference; children are owned by their parent's slice.
type node struct {
	name     string
	self     Node
	parent   *node
	children []Node
	root     bool
}

// Node is a named container in the scene tree.
type Node interface {
	// Name returns the node name. Names are not required to be unique.
	Name() string

	// Parent returns the parent node, or nil for the root and detached nodes.
	Parent() Node

	// Children returns a copy of the ordered child list.
	Children() []Node

	// ChildCount returns the number of direct children.
	ChildCount() int

	// AddChild appends child to this node, detaching it from its previous parent first. Adding a
	// child that is already last under this node leaves the order unchanged; adding an earlier
	// child moves it to the end.
	//
	// Parameters:
	//   - child: the node to attach
	//
	// Returns:
	//   - error: ErrInvalidTopology if child is nil, this node, one of its ancestors, or the root
	AddChild(child Node) error

	// RemoveChild detaches a direct child.
	//
	// Parameters:
	//   - child: the node to detach
	//
	// Returns:
	//   - bool: true if child was a direct child
	RemoveChild(child Node) bool

	// Find returns the first node named name in depth-first order, starting with this node.
	//
	// Parameters:
	//   - name: the name to look for
	//
	// Returns:
	//   - Node: the first match, or nil
	Find(name string) Node

	base() *node
}

var _ Node = &node{}

func newNode(name string) *node {
	n := &node{name: name}
	n.self = n
	return n
}

func (n *node) base() *node {
	return n
}

func (n *node) Name() string {
	return n.name
}

func (n *node) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.self
}

func (n *node) Children() []Node {
	return slices.Clone(n.children)
}

func (n *node) ChildCount() int {
	return len(n.children)
}

func (n *node) AddChild(child Node) error {
	if child == nil {
		return fmt.Errorf("%w: nil child", ErrInvalidTopology)
	}
	c := child.base()
	if c.root {
		return fmt.Errorf("%w: root %q cannot be a child", ErrInvalidTopology, c.name)
	}
	for p := n; p != nil; p = p.parent {
		if p == c {
			return fmt.Errorf("%w: %q cannot be added under itself or its descendant %q", ErrInvalidTopology, c.name, n.name)
		}
	}

	if c.parent != nil {
		c.parent.detach(c)
	}
	n.children = append(n.children, c.self)
	c.parent = n
	return nil
}

func (n *node) RemoveChild(child Node) bool {
	if child == nil {
		return false
	}
	c := child.base()
	if c.parent != n {
		return false
	}
	n.detach(c)
	c.parent = nil
	return true
}

func (n *node) detach(c *node) {
	n.children = slices.DeleteFunc(n.children, func(ch Node) bool {
		return ch.base() == c
	})
}

func (n *node) Find(name string) Node {
	if n.name == name {
		return n.self
	}
	for _, ch := range n.children {
		if found := ch.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// walk visits n and its subtree depth-first, parent before children, in insertion order. The
// child list is snapshotted per node so callbacks may restructure the tree.
func walk(n Node, fn func(Node)) {
	fn(n)
	for _, ch := range n.Children() {
		walk(ch, fn)
	}
}
