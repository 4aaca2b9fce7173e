package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/pipeline"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name()
	}
	return out
}

func TestManager_SingleRoot(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.Root())
	assert.ErrorIs(t, m.Walk(func(Node) {}), ErrNoRoot)

	root, err := m.CreateRootNode("Root")
	require.NoError(t, err)
	assert.Equal(t, root, m.Root())

	_, err = m.CreateRootNode("Other")
	assert.ErrorIs(t, err, ErrRootExists)
	assert.Equal(t, "Root", m.Root().Name())
}

func TestManager_WithRoot(t *testing.T) {
	m := NewManager(WithRoot("Root"))
	require.NotNil(t, m.Root())
	_, err := m.CreateRootNode("Root")
	assert.ErrorIs(t, err, ErrRootExists)
}

func TestNode_ReparentExactlyOnce(t *testing.T) {
	m := NewManager(WithRoot("Root"))
	a := m.CreateNode("A")
	b := m.CreateNode("B")
	child := m.CreateObject("Child")
	require.NoError(t, m.Root().AddChild(a))
	require.NoError(t, m.Root().AddChild(b))

	require.NoError(t, a.AddChild(child))
	require.NoError(t, b.AddChild(child))

	assert.Equal(t, 0, a.ChildCount())
	assert.Equal(t, []string{"Child"}, names(b.Children()))
	assert.Equal(t, b, child.Parent())
}

func TestNode_ReaddMovesToEnd(t *testing.T) {
	root := NewManager(WithRoot("Root")).Root()
	x, y := NewObject("X"), NewObject("Y")
	require.NoError(t, root.AddChild(x))
	require.NoError(t, root.AddChild(y))

	require.NoError(t, root.AddChild(x))
	assert.Equal(t, []string{"Y", "X"}, names(root.Children()))
}

func TestNode_InvalidTopology(t *testing.T) {
	m := NewManager(WithRoot("Root"))
	a := m.CreateNode("A")
	b := m.CreateNode("B")
	require.NoError(t, m.Root().AddChild(a))
	require.NoError(t, a.AddChild(b))

	tests := []struct {
		name   string
		parent Node
		child  Node
	}{
		{"self", a, a},
		{"ancestor", b, a},
		{"grand ancestor", b, m.Root()},
		{"nil", a, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.parent.AddChild(tt.child), ErrInvalidTopology)
		})
	}

	assert.Equal(t, []string{"A"}, names(m.Root().Children()))
	assert.Equal(t, []string{"B"}, names(a.Children()))
	assert.Equal(t, a, b.Parent())
}

func TestNode_RemoveChild(t *testing.T) {
	root := NewManager(WithRoot("Root")).Root()
	o := NewObject("O")
	require.NoError(t, root.AddChild(o))

	assert.True(t, root.RemoveChild(o))
	assert.Nil(t, o.Parent())
	assert.False(t, root.RemoveChild(o))
}

func TestManager_WalkOrderAndFind(t *testing.T) {
	m := NewManager(WithRoot("Root"))
	group := m.CreateNode("Group")
	cube := m.CreateObject("Cube")
	light := m.CreateObject("Light")
	dup := m.CreateObject("Cube")
	require.NoError(t, m.Root().AddChild(group))
	require.NoError(t, group.AddChild(cube))
	require.NoError(t, cube.AddChild(dup))
	require.NoError(t, m.Root().AddChild(light))

	var visited []string
	require.NoError(t, m.Walk(func(n Node) { visited = append(visited, n.Name()) }))
	assert.Equal(t, []string{"Root", "Group", "Cube", "Cube", "Light"}, visited)

	assert.Same(t, cube, m.FindByName("Cube"))
	assert.Nil(t, m.FindByName("Missing"))

	objs := m.Objects()
	require.Len(t, objs, 3)
	assert.Same(t, light, objs[2])
}

func TestManager_DetachedObjectsUnreachable(t *testing.T) {
	m := NewManager(WithRoot("Root"))
	m.CreateObject("Loose")
	assert.Empty(t, m.Objects())
	assert.Nil(t, m.FindByName("Loose"))
}

func TestObject_Defaults(t *testing.T) {
	o := NewObject("O")

	assert.True(t, o.Enabled())
	assert.Nil(t, o.Camera())
	assert.Nil(t, o.Shader())
	assert.Nil(t, o.Mesh())
	assert.Equal(t, pipeline.NewRenderState(), o.RenderState())
	assert.Equal(t, mgl32.Ident4(), o.Transform().Matrix())

	assert.NotPanics(t, o.Update)
	assert.NoError(t, o.Apply())
}

func TestObject_Listener(t *testing.T) {
	var updated, applied []string
	l := ListenerFuncs{
		UpdateFunc: func(obj Object) {
			updated = append(updated, obj.Name())
			obj.Transform().SetTranslate(1, 2, 3)
		},
		ApplyFunc: func(obj Object) error {
			applied = append(applied, obj.Name())
			return nil
		},
	}
	o := NewObject("O", WithListener(l))

	o.Update()
	require.NoError(t, o.Apply())

	assert.Equal(t, []string{"O"}, updated)
	assert.Equal(t, []string{"O"}, applied)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, o.Transform().Position())

	o.SetListener(nil)
	o.Update()
	assert.Len(t, updated, 1)
}

func TestListenerFuncs_NilFields(t *testing.T) {
	l := ListenerFuncs{}
	assert.NotPanics(t, func() { l.Update(nil) })
	assert.NoError(t, l.Apply(nil))
}
