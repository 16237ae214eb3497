// Package graph implements the node-graph runtime: a closed enumeration of
// node types evaluated in topological order over a GraphSpec, with
// numeric broadcasting across the runtime Value layouts and per-node
// persistent state carried across frames.
package graph

// NodeType names the node kinds the evaluator dispatches. It is a string
// type whose constants are the JSON "type" tags; evalNode switches over
// them, and a node of any other type yields an "UnknownId" diagnostic.
type NodeType string

const (
	NodeConstant NodeType = "constant"
	NodeSlider   NodeType = "slider"

	NodeAdd      NodeType = "add"
	NodeSub      NodeType = "subtract"
	NodeMul      NodeType = "multiply"
	NodeDiv      NodeType = "divide"
	NodePower    NodeType = "power"
	NodeLog      NodeType = "log"
	NodeSin      NodeType = "sin"
	NodeCos      NodeType = "cos"
	NodeTan      NodeType = "tan"

	NodeTime       NodeType = "time"
	NodeOscillator NodeType = "oscillator"

	NodeAnd NodeType = "and"
	NodeOr  NodeType = "or"
	NodeNot NodeType = "not"
	NodeXor NodeType = "xor"

	NodeGreaterThan NodeType = "greaterthan"
	NodeLessThan    NodeType = "lessthan"
	NodeEqual       NodeType = "equal"
	NodeNotEqual    NodeType = "notequal"
	NodeIf          NodeType = "if"

	NodeClamp NodeType = "clamp"
	NodeRemap NodeType = "remap"

	NodeVec3          NodeType = "vec3"
	NodeVec3Split     NodeType = "vec3split"
	NodeVec3Add       NodeType = "vec3add"
	NodeVec3Subtract  NodeType = "vec3subtract"
	NodeVec3Multiply  NodeType = "vec3multiply"
	NodeVec3Scale     NodeType = "vec3scale"
	NodeVec3Normalize NodeType = "vec3normalize"
	NodeVec3Dot       NodeType = "vec3dot"
	NodeVec3Cross     NodeType = "vec3cross"
	NodeVec3Length    NodeType = "vec3length"

	NodeInverseKinematics NodeType = "inversekinematics"

	NodeOutput NodeType = "output"
)

// InputConnection names the upstream node and output key a port reads
// from.
type InputConnection struct {
	NodeID    string
	OutputKey string
}

// NodeParams carries the node-type-specific literal configuration. Only
// the fields relevant to a node's type are read; the rest are zero.
type NodeParams struct {
	Value *float64
	Bool  *bool

	Frequency *float64
	Phase     *float64

	Min float64
	Max float64

	X, Y, Z *float64

	InMin, InMax   *float64
	OutMin, OutMax *float64

	Bone1, Bone2, Bone3 *float64

	Index *float64

	Path string
}

// NodeSpec describes one node: its id, closed type, literal params, and
// its input ports wired to upstream (node, output) pairs.
type NodeSpec struct {
	ID     string
	Type   NodeType
	Params NodeParams
	Inputs map[string]InputConnection
}

// GraphSpec is the full set of nodes making up one graph, addressed by
// NodeSpec.ID.
type GraphSpec struct {
	Nodes []NodeSpec
}
