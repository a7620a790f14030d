package autodiff

import (
	"fmt"
	"strings"
)

// DotGraph renders the graph recorded behind output in Graphviz DOT format.
// Variables are orange ellipses labelled with their name (plus shape and
// dtype when verbose); operations are light-blue boxes labelled with the
// function name. Node identifiers are assigned in traversal order, so the
// output is deterministic.
//
//	digraph g {
//	v0 [label="y", color=orange, style=filled]
//	f0 [label="Add", color=lightblue, style=filled, shape=box]
//	v1 -> f0
//	f0 -> v0
//	...
//	}
func DotGraph(output *Variable, verbose bool) (string, error) {
	d := &dotWriter{
		vars:    make(map[*Variable]int),
		ops:     make(map[*Operation]int),
		verbose: verbose,
	}

	var pending []*Operation
	seen := make(map[*Operation]struct{})
	addOp := func(op *Operation) {
		if _, ok := seen[op]; ok {
			return
		}
		seen[op] = struct{}{}
		pending = append(pending, op)
	}

	d.writeVar(output)
	if output.creator != nil {
		addOp(output.creator)
	}

	for len(pending) > 0 {
		op := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if err := d.writeOp(op); err != nil {
			return "", err
		}
		for _, x := range op.inputs {
			d.writeVar(x)
			if x.creator != nil {
				addOp(x.creator)
			}
		}
	}

	return "digraph g {\n" + d.sb.String() + "}", nil
}

type dotWriter struct {
	sb      strings.Builder
	vars    map[*Variable]int
	ops     map[*Operation]int
	written map[*Variable]struct{}
	verbose bool
}

func (d *dotWriter) varID(v *Variable) string {
	id, ok := d.vars[v]
	if !ok {
		id = len(d.vars)
		d.vars[v] = id
	}
	return fmt.Sprintf("v%d", id)
}

func (d *dotWriter) opID(op *Operation) string {
	id, ok := d.ops[op]
	if !ok {
		id = len(d.ops)
		d.ops[op] = id
	}
	return fmt.Sprintf("f%d", id)
}

func (d *dotWriter) writeVar(v *Variable) {
	if d.written == nil {
		d.written = make(map[*Variable]struct{})
	}
	if _, ok := d.written[v]; ok {
		return
	}
	d.written[v] = struct{}{}

	label := v.name
	if d.verbose && v.data != nil {
		if v.name != "" {
			label += ": "
		}
		label += v.data.Shape().String() + " " + v.data.DType().String()
	}
	fmt.Fprintf(&d.sb, "%s [label=%q, color=orange, style=filled]\n", d.varID(v), label)
}

func (d *dotWriter) writeOp(op *Operation) error {
	id := d.opID(op)
	fmt.Fprintf(&d.sb, "%s [label=%q, color=lightblue, style=filled, shape=box]\n", id, op.Name())
	for _, x := range op.inputs {
		fmt.Fprintf(&d.sb, "%s -> %s\n", d.varID(x), id)
	}
	outs, err := op.Outputs()
	if err != nil {
		return fmt.Errorf("dot: %w", err)
	}
	for _, y := range outs {
		fmt.Fprintf(&d.sb, "%s -> %s\n", id, d.varID(y))
	}
	return nil
}
