package scene

import "fmt"

type manager struct {
	root *node
}

// Manager owns the single root of a scene tree and creates its nodes. Created nodes and objects
// are detached until added under a node reachable from the root.
type Manager interface {
	// CreateRootNode creates the tree root.
	//
	// Parameters:
	//   - name: the root name
	//
	// Returns:
	//   - Node: the root
	//   - error: ErrRootExists if the manager already has a root
	CreateRootNode(name string) (Node, error)

	// Root returns the root node, or nil before CreateRootNode.
	Root() Node

	// CreateNode creates a detached structural node.
	CreateNode(name string) Node

	// CreateObject creates a detached renderable object.
	//
	// Parameters:
	//   - name: the object name
	//   - options: a variadic list of ObjectBuilderOption functions
	//
	// Returns:
	//   - Object: the object
	CreateObject(name string, options ...ObjectBuilderOption) Object

	// FindByName returns the first node with the given name in depth-first order from the root.
	FindByName(name string) Node

	// Walk visits every node reachable from the root depth-first, parent before children, in
	// insertion order.
	//
	// Parameters:
	//   - fn: called once per node
	//
	// Returns:
	//   - error: ErrNoRoot if there is no root
	Walk(fn func(Node)) error

	// Objects returns the objects reachable from the root in traversal order.
	Objects() []Object
}

var _ Manager = &manager{}

// NewManager creates a scene manager.
//
// Parameters:
//   - options: a variadic list of ManagerBuilderOption functions
//
// Returns:
//   - Manager: the manager
func NewManager(options ...ManagerBuilderOption) Manager {
	m := &manager{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *manager) CreateRootNode(name string) (Node, error) {
	if m.root != nil {
		return nil, fmt.Errorf("%w: %q", ErrRootExists, m.root.name)
	}
	m.root = newNode(name)
	m.root.root = true
	return m.root, nil
}

func (m *manager) Root() Node {
	if m.root == nil {
		return nil
	}
	return m.root
}

func (m *manager) CreateNode(name string) Node {
	return newNode(name)
}

func (m *manager) CreateObject(name string, options ...ObjectBuilderOption) Object {
	return NewObject(name, options...)
}

func (m *manager) FindByName(name string) Node {
	if m.root == nil {
		return nil
	}
	return m.root.Find(name)
}

func (m *manager) Walk(fn func(Node)) error {
	if m.root == nil {
		return ErrNoRoot
	}
	walk(m.root, fn)
	return nil
}

func (m *manager) Objects() []Object {
	var out []Object
	_ = m.Walk(func(n Node) {
		if o, ok := n.(Object); ok {
			out = append(out, o)
		}
	})
	return out
}
