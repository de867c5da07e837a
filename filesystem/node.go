package filesystem

import (
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/tidwall/btree"
)

// NodeID identifies a node in its [FileSystem] registry
type NodeID uint64

// RootID is the NodeID of every filesystem's root, matching FUSE's root nodeid
const RootID NodeID = fuse.FUSE_ROOT_ID

type Node struct {
	id       NodeID
	name     string                     // Name of the node (last part of the path); "" for root
	parent   NodeID                     // 0 for root and detached nodes
	children *btree.Map[string, NodeID] // ordered child index; nil for files
	*Inode
}

// newNode creates an unregistered Node. Directories get an empty child index.
//
// NOTE: Parent node is responsible for setting the returned Node's parent
// when linking it as a child
func newNode(id NodeID, name string, inode *Inode) *Node {
	node := &Node{
		id:    id,
		name:  name,
		Inode: inode,
	}
	if inode.IsDir() {
		node.children = btree.NewMap[string, NodeID](0)
	}
	return node
}

// NodeID returns the registry id of the node
func (n *Node) NodeID() NodeID {
	return n.id
}

// Name returns the node's name; "" for root
func (n *Node) Name() string {
	return n.name
}

// Parent returns the parent's NodeID; 0 for root
func (n *Node) Parent() NodeID {
	return n.parent
}

func (n *Node) IsRoot() bool {
	return n.id == RootID
}

// Child looks a child up by name. Always misses on files.
func (n *Node) Child(name string) (NodeID, bool) {
	if n.children == nil {
		return 0, false
	}
	return n.children.Get(name)
}

// Len returns the number of children
func (n *Node) Len() int {
	if n.children == nil {
		return 0
	}
	return n.children.Len()
}

// ChildNames returns child names in byte-wise lexicographic order
func (n *Node) ChildNames() []string {
	if n.children == nil {
		return nil
	}
	return n.children.Keys()
}

// AscendChildren calls fn for each child whose name is >= pivot in order
// until fn returns false
func (n *Node) AscendChildren(pivot string, fn func(name string, id NodeID) bool) {
	if n.children == nil {
		return
	}
	n.children.Ascend(pivot, fn)
}

// addChild links child under this node and sets its parent
func (n *Node) addChild(child *Node) {
	n.children.Set(child.name, child.id)
	child.parent = n.id
}

// removeChild unlinks child from this node and clears its parent
func (n *Node) removeChild(child *Node) {
	n.children.Delete(child.name)
	child.parent = 0
}
