package graph

import (
	"math"

	"github.com/vizij-ai/vizij-go-runtime/engine/diagnostics"
	"github.com/vizij-ai/vizij-go-runtime/engine/path"
	"github.com/vizij-ai/vizij-go-runtime/engine/value"
	"github.com/vizij-ai/vizij-go-runtime/engine/vecmath"
)

func add(x, y float32) float32 { return x + y }
func sub(x, y float32) float32 { return x - y }
func mul(x, y float32) float32 { return x * y }
func div(x, y float32) float32 { return x / y }
func pow(x, y float32) float32 { return float32(math.Pow(float64(x), float64(y))) }

// evalNode dispatches n by its closed NodeType, consuming resolved
// upstream outputs and params, and returns this node's output map.
func (r *Runtime) evalNode(n NodeSpec, dt float32, log *diagnostics.Summary) map[string]value.Value {
	switch n.Type {
	case NodeConstant, NodeSlider:
		return out(paramValue(n))

	case NodeAdd:
		return out(foldBinary(r, n, add, 0))
	case NodeSub:
		return out(binaryOrIdentity(r, n, sub, 0))
	case NodeMul:
		return out(foldBinary(r, n, mul, 1))
	case NodeDiv:
		return out(binaryOrIdentity(r, n, div, 1))
	case NodePower:
		return out(binaryOrIdentity(r, n, pow, 1))

	case NodeLog:
		x, _ := r.input(n, "x")
		return out(broadcastUnary(x, func(f float32) float32 { return float32(math.Log(float64(f))) }))
	case NodeSin:
		x, _ := r.input(n, "x")
		return out(broadcastUnary(x, func(f float32) float32 { return float32(math.Sin(float64(f))) }))
	case NodeCos:
		x, _ := r.input(n, "x")
		return out(broadcastUnary(x, func(f float32) float32 { return float32(math.Cos(float64(f))) }))
	case NodeTan:
		x, _ := r.input(n, "x")
		return out(broadcastUnary(x, func(f float32) float32 { return float32(math.Tan(float64(f))) }))

	case NodeTime:
		st := r.state(n.ID)
		st.accum += float64(dt)
		return out(value.Float32(float32(st.accum)))

	case NodeOscillator:
		st := r.state(n.ID)
		st.accum += float64(dt)
		freq := paramFloat(n.Params.Frequency, 1)
		phase := paramFloat(n.Params.Phase, 0)
		v := float32(math.Sin(2*math.Pi*float64(freq)*st.accum + float64(phase)))
		return out(value.Float32(v))

	case NodeAnd:
		x, _ := r.input(n, "x")
		y, _ := r.input(n, "y")
		return out(value.BoolVal(x.IsTruthy() && y.IsTruthy()))
	case NodeOr:
		x, _ := r.input(n, "x")
		y, _ := r.input(n, "y")
		return out(value.BoolVal(x.IsTruthy() || y.IsTruthy()))
	case NodeNot:
		x, _ := r.input(n, "x")
		return out(value.BoolVal(!x.IsTruthy()))
	case NodeXor:
		x, _ := r.input(n, "x")
		y, _ := r.input(n, "y")
		return out(value.BoolVal(x.IsTruthy() != y.IsTruthy()))

	case NodeGreaterThan:
		x, _ := r.input(n, "x")
		y, _ := r.input(n, "y")
		return out(compareAll(x, y, func(a, b float32) bool { return a > b }))
	case NodeLessThan:
		x, _ := r.input(n, "x")
		y, _ := r.input(n, "y")
		return out(compareAll(x, y, func(a, b float32) bool { return a < b }))
	case NodeEqual:
		x, _ := r.input(n, "x")
		y, _ := r.input(n, "y")
		return out(compareAll(x, y, func(a, b float32) bool { return a == b }))
	case NodeNotEqual:
		x, _ := r.input(n, "x")
		y, _ := r.input(n, "y")
		return out(compareAll(x, y, func(a, b float32) bool { return a != b }))

	case NodeIf:
		cond, _ := r.input(n, "cond")
		then, _ := r.input(n, "then")
		els, _ := r.input(n, "else")
		if cond.IsTruthy() {
			return out(then)
		}
		return out(els)

	case NodeClamp:
		x, _ := r.input(n, "x")
		min, max := float32(n.Params.Min), float32(n.Params.Max)
		return out(broadcastUnary(x, func(f float32) float32 { return vecmath.Clamp(f, min, max) }))

	case NodeRemap:
		x, _ := r.input(n, "x")
		inMin := paramFloat(n.Params.InMin, 0)
		inMax := paramFloat(n.Params.InMax, 1)
		outMin := paramFloat(n.Params.OutMin, 0)
		outMax := paramFloat(n.Params.OutMax, 1)
		return out(broadcastUnary(x, func(f float32) float32 { return vecmath.Remap(f, inMin, inMax, outMin, outMax) }))

	case NodeVec3:
		x, xok := r.input(n, "x")
		y, yok := r.input(n, "y")
		z, zok := r.input(n, "z")
		return out(value.Vec3Val([3]float32{
			scalarOr(x, xok, paramFloat(n.Params.X, 0)),
			scalarOr(y, yok, paramFloat(n.Params.Y, 0)),
			scalarOr(z, zok, paramFloat(n.Params.Z, 0)),
		}))

	case NodeVec3Split:
		v, _ := r.input(n, "x")
		return map[string]value.Value{
			"x": value.Float32(v.Vec3[0]),
			"y": value.Float32(v.Vec3[1]),
			"z": value.Float32(v.Vec3[2]),
		}

	case NodeVec3Add:
		x, _ := r.input(n, "x")
		y, _ := r.input(n, "y")
		return out(broadcastBinary(x, y, add))
	case NodeVec3Subtract:
		x, _ := r.input(n, "x")
		y, _ := r.input(n, "y")
		return out(broadcastBinary(x, y, sub))
	case NodeVec3Multiply:
		x, _ := r.input(n, "x")
		y, _ := r.input(n, "y")
		return out(broadcastBinary(x, y, mul))
	case NodeVec3Scale:
		x, _ := r.input(n, "x")
		s, _ := r.input(n, "scale")
		return out(broadcastBinary(x, s, mul))
	case NodeVec3Normalize:
		x, _ := r.input(n, "x")
		return out(value.Vec3Val(vecmath.Normalize3(x.Vec3)))
	case NodeVec3Dot:
		x, _ := r.input(n, "x")
		y, _ := r.input(n, "y")
		return out(value.Float32(vecmath.Dot(x.Vec3[:], y.Vec3[:])))
	case NodeVec3Cross:
		x, _ := r.input(n, "x")
		y, _ := r.input(n, "y")
		return out(value.Vec3Val(vecmath.Cross3(x.Vec3, y.Vec3)))
	case NodeVec3Length:
		x, _ := r.input(n, "x")
		return out(value.Float32(vecmath.Length(x.Vec3[:])))

	case NodeInverseKinematics:
		target, _ := r.input(n, "target")
		bone1 := paramFloat(n.Params.Bone1, 1)
		bone2 := paramFloat(n.Params.Bone2, 1)
		bone3 := paramFloat(n.Params.Bone3, 0)
		angles := vecmath.SolvePlanarIK(bone1, bone2, bone3, target.Vec3)
		return out(value.Vec3Val(angles))

	case NodeOutput:
		v, ok := r.input(n, "in")
		if !ok {
			log.Addf(n.ID, "ShapeMismatch", "output node %s has no resolvable input", n.ID)
			return nil
		}
		p, err := path.Parse(n.Params.Path)
		if err != nil {
			log.Addf(n.ID, "UnresolvedBinding", "output node %s has invalid path %q", n.ID, n.Params.Path)
			return nil
		}
		r.Writes.PushValue(p, v)
		return out(v)

	default:
		log.Addf(n.ID, "UnknownId", "unrecognized node type %q", n.Type)
		return nil
	}
}

// foldBinary prefers the explicit x/y ports (the binary_numeric case named
// by the spec); when absent, it folds the variadic in_<index> ports with
// op starting from identity, exercising the variadic port-ordering rule.
func foldBinary(r *Runtime, n NodeSpec, op func(a, b float32) float32, identity float32) value.Value {
	if x, ok := r.input(n, "x"); ok {
		if y, ok := r.input(n, "y"); ok {
			return broadcastBinary(x, y, op)
		}
	}
	acc := value.Float32(identity)
	for _, v := range r.variadicInputs(n, "in") {
		acc = broadcastBinary(acc, v, op)
	}
	return acc
}

// binaryOrIdentity is foldBinary without the variadic fallback, for
// non-associative operators (Subtract, Divide, Power) where folding more
// than two operands isn't well defined.
func binaryOrIdentity(r *Runtime, n NodeSpec, op func(a, b float32) float32, identity float32) value.Value {
	x, xok := r.input(n, "x")
	y, yok := r.input(n, "y")
	if !xok {
		x = value.Float32(identity)
	}
	if !yok {
		y = value.Float32(identity)
	}
	return broadcastBinary(x, y, op)
}

func scalarOr(v value.Value, ok bool, def float32) float32 {
	if ok && v.Kind == value.KindFloat {
		return v.Float
	}
	return def
}

