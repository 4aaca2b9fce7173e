package scene

// ManagerBuilderOption is a functional option for configuring a Manager.
type ManagerBuilderOption func(m *manager)

// WithRoot creates the root node at construction.
//
// Parameters:
//   - name: the root name
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithRoot(name string) ManagerBuilderOption {
	return func(m *manager) {
		m.root = newNode(name)
		m.root.root = true
	}
}
