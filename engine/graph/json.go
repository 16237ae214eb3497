package graph

import "encoding/json"

type inputConnectionJSON struct {
	NodeID    string `json:"node_id"`
	OutputKey string `json:"output_key"`
}

type nodeParamsJSON struct {
	Value *float64 `json:"value,omitempty"`
	Bool  *bool    `json:"bool,omitempty"`

	Frequency *float64 `json:"frequency,omitempty"`
	Phase     *float64 `json:"phase,omitempty"`

	Min float64 `json:"min,omitempty"`
	Max float64 `json:"max,omitempty"`

	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
	Z *float64 `json:"z,omitempty"`

	InMin  *float64 `json:"in_min,omitempty"`
	InMax  *float64 `json:"in_max,omitempty"`
	OutMin *float64 `json:"out_min,omitempty"`
	OutMax *float64 `json:"out_max,omitempty"`

	Bone1 *float64 `json:"bone1,omitempty"`
	Bone2 *float64 `json:"bone2,omitempty"`
	Bone3 *float64 `json:"bone3,omitempty"`

	Index *float64 `json:"index,omitempty"`

	Path string `json:"path,omitempty"`
}

type nodeSpecJSON struct {
	ID     string                         `json:"id"`
	Type   string                         `json:"type"`
	Params nodeParamsJSON                 `json:"params"`
	Inputs map[string]inputConnectionJSON `json:"inputs"`
}

type graphSpecJSON struct {
	Nodes []nodeSpecJSON `json:"nodes"`
}

func toParamsJSON(p NodeParams) nodeParamsJSON {
	return nodeParamsJSON{
		Value: p.Value, Bool: p.Bool,
		Frequency: p.Frequency, Phase: p.Phase,
		Min: p.Min, Max: p.Max,
		X: p.X, Y: p.Y, Z: p.Z,
		InMin: p.InMin, InMax: p.InMax, OutMin: p.OutMin, OutMax: p.OutMax,
		Bone1: p.Bone1, Bone2: p.Bone2, Bone3: p.Bone3,
		Index: p.Index,
		Path:  p.Path,
	}
}

func fromParamsJSON(p nodeParamsJSON) NodeParams {
	return NodeParams{
		Value: p.Value, Bool: p.Bool,
		Frequency: p.Frequency, Phase: p.Phase,
		Min: p.Min, Max: p.Max,
		X: p.X, Y: p.Y, Z: p.Z,
		InMin: p.InMin, InMax: p.InMax, OutMin: p.OutMin, OutMax: p.OutMax,
		Bone1: p.Bone1, Bone2: p.Bone2, Bone3: p.Bone3,
		Index: p.Index,
		Path:  p.Path,
	}
}

// MarshalJSON encodes the GraphSpec JSON schema from §6.
func (g GraphSpec) MarshalJSON() ([]byte, error) {
	out := graphSpecJSON{Nodes: make([]nodeSpecJSON, 0, len(g.Nodes))}
	for _, n := range g.Nodes {
		nj := nodeSpecJSON{
			ID:     n.ID,
			Type:   string(n.Type),
			Params: toParamsJSON(n.Params),
			Inputs: make(map[string]inputConnectionJSON, len(n.Inputs)),
		}
		for port, conn := range n.Inputs {
			nj.Inputs[port] = inputConnectionJSON{NodeID: conn.NodeID, OutputKey: conn.OutputKey}
		}
		out.Nodes = append(out.Nodes, nj)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the GraphSpec JSON schema from §6.
func (g *GraphSpec) UnmarshalJSON(data []byte) error {
	var in graphSpecJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	nodes := make([]NodeSpec, 0, len(in.Nodes))
	for _, nj := range in.Nodes {
		n := NodeSpec{
			ID:     nj.ID,
			Type:   NodeType(nj.Type),
			Params: fromParamsJSON(nj.Params),
			Inputs: make(map[string]InputConnection, len(nj.Inputs)),
		}
		for port, conn := range nj.Inputs {
			n.Inputs[port] = InputConnection{NodeID: conn.NodeID, OutputKey: conn.OutputKey}
		}
		nodes = append(nodes, n)
	}
	g.Nodes = nodes
	return nil
}
