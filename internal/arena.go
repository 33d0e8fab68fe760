package internal

// NoParent marks the root of a search tree.
const NoParent = -1

// Node is a search tree record. Nodes refer to their parent by arena index so
// the tree can only grow: a node is never changed after Add.
type Node[StateType comparable, ActionType any] struct {
	State     StateType
	Action    ActionType
	Parent    int
	PathCost  int
	Heuristic int
}

// Arena owns every node created by one search.
type Arena[StateType comparable, ActionType any] struct {
	nodes []Node[StateType, ActionType]
}

// Root stores the tree root and returns its index.
func (a *Arena[StateType, ActionType]) Root(state StateType, heuristic int) int {
	var none ActionType
	return a.Add(Node[StateType, ActionType]{State: state, Action: none, Parent: NoParent, Heuristic: heuristic})
}

// Add appends node and returns its index.
func (a *Arena[StateType, ActionType]) Add(node Node[StateType, ActionType]) int {
	a.nodes = append(a.nodes, node)
	return len(a.nodes) - 1
}

// At returns the node stored at index.
func (a *Arena[StateType, ActionType]) At(index int) Node[StateType, ActionType] {
	return a.nodes[index]
}

func (a *Arena[StateType, ActionType]) Len() int { return len(a.nodes) }

// ReconstructPath walks parent indices from index back to the root and returns the
// actions and states in root-to-leaf order. The states include the root.
func (a *Arena[StateType, ActionType]) ReconstructPath(index int) ([]ActionType, []StateType) {
	depth := 0
	for i := index; a.nodes[i].Parent != NoParent; i = a.nodes[i].Parent {
		depth++
	}
	actions := make([]ActionType, depth)
	states := make([]StateType, depth+1)
	i := index
	for k := depth; k > 0; k-- {
		actions[k-1] = a.nodes[i].Action
		states[k] = a.nodes[i].State
		i = a.nodes[i].Parent
	}
	states[0] = a.nodes[i].State
	return actions, states
}
