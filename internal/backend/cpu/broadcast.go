package cpu

import "github.com/born-ml/autograd/internal/tensor"

// broadcastView reads a tensor of one shape as if it had a larger
// broadcast-compatible shape. Left-padded and size-1 axes get stride 0, so
// every output position along them maps to the same input element.
type broadcastView struct {
	outStrides []int
	inStrides  []int
}

func newBroadcastView(in, out tensor.Shape) broadcastView {
	v := broadcastView{
		outStrides: out.ComputeStrides(),
		inStrides:  make([]int, len(out)),
	}
	pad := len(out) - len(in)
	strides := in.ComputeStrides()
	for axis := pad; axis < len(out); axis++ {
		if d := in[axis-pad]; d != 1 {
			v.inStrides[axis] = strides[axis-pad]
		}
	}
	return v
}

// index maps a flat offset in the output shape to the flat offset of the
// element it reads in the input.
func (v broadcastView) index(flat int) int {
	idx := 0
	for axis, stride := range v.outStrides {
		idx += (flat / stride) * v.inStrides[axis]
		flat %= stride
	}
	return idx
}
