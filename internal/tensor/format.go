package tensor

import (
	"strconv"
	"strings"
)

// String renders the tensor NumPy style: scalars print bare, higher
// dimensions nest in brackets with one row per line.
//
//	[[1 2]
//	 [3 4]]
func (r *RawTensor) String() string {
	if len(r.shape) == 0 {
		return formatElem(r.data[0])
	}
	var sb strings.Builder
	r.format(&sb, 0, 0)
	return sb.String()
}

func (r *RawTensor) format(sb *strings.Builder, dim, offset int) {
	strides := r.shape.ComputeStrides()
	sb.WriteByte('[')
	for i := 0; i < r.shape[dim]; i++ {
		if i > 0 {
			if dim == len(r.shape)-1 {
				sb.WriteByte(' ')
			} else {
				sb.WriteString(strings.Repeat("\n", len(r.shape)-1-dim))
				sb.WriteString(strings.Repeat(" ", dim+1))
			}
		}
		if dim == len(r.shape)-1 {
			sb.WriteString(formatElem(r.data[offset+i]))
			continue
		}
		r.format(sb, dim+1, offset+i*strides[dim])
	}
	sb.WriteByte(']')
}

func formatElem(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}
