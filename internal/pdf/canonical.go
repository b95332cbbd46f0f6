package pdf

import (
	"errors"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// renumbering maps object numbers of a merged document onto 1..n in the
// order a depth first walk from the trailer reaches them.
type renumbering struct {
	xt      *model.XRefTable
	numbers map[int]int
	order   []int
}

// canonicalize rebuilds the cross reference table of ctx so that equal
// inputs always produce the same object numbers. Objects nothing refers to
// are dropped. Dictionary keys are walked in sorted order.
func canonicalize(ctx *model.Context) error {
	xt := ctx.XRefTable

	if err := xt.BindNameTrees(); err != nil {
		return err
	}

	r := &renumbering{xt: xt, numbers: map[int]int{}}

	for _, ir := range []*types.IndirectRef{xt.Root, xt.Info, xt.Encrypt} {
		if ir == nil {
			continue
		}
		if err := r.visit(*ir); err != nil {
			return err
		}
	}
	if xt.AdditionalStreams != nil {
		if err := r.walk(*xt.AdditionalStreams); err != nil {
			return err
		}
	}

	table := map[int]*model.XRefTableEntry{0: model.NewFreeHeadXRefTableEntry()}
	for _, old := range r.order {
		entry := xt.Table[old]
		renumbered := model.NewXRefTableEntryGen0(r.patch(entry.Object))
		renumbered.RefCount = entry.RefCount
		renumbered.Valid = entry.Valid
		table[r.numbers[old]] = renumbered
	}

	size := len(r.order) + 1
	xt.Table = table
	xt.Size = &size
	xt.MaxObjNr = len(r.order)

	xt.Root = r.ref(xt.Root)
	xt.Info = r.ref(xt.Info)
	xt.Encrypt = r.ref(xt.Encrypt)
	if xt.AdditionalStreams != nil {
		a := r.patch(*xt.AdditionalStreams).(types.Array)
		xt.AdditionalStreams = &a
	}
	if xt.Root == nil {
		return errors.New("document has no catalog")
	}
	if root, ok := table[xt.Root.ObjectNumber.Value()].Object.(types.Dict); ok {
		xt.RootDict = root
	}

	// The name trees were bound above and still carry the old numbers.
	xt.Names = map[string]*model.Node{}
	xt.LinearizationObjs = types.IntSet{}

	if ctx.Read != nil {
		ctx.Read.ObjectStreams = types.IntSet{}
		ctx.Read.XRefStreams = types.IntSet{}
	}
	if ctx.Optimize != nil {
		ctx.Optimize.DuplicateFontObjs = types.IntSet{}
		ctx.Optimize.DuplicateImageObjs = types.IntSet{}
		ctx.Optimize.DuplicateInfoObjects = types.IntSet{}
	}

	return nil
}

func (r *renumbering) visit(ir types.IndirectRef) error {
	nr := ir.ObjectNumber.Value()
	if _, seen := r.numbers[nr]; seen {
		return nil
	}

	entry, found := r.xt.FindTableEntryLight(nr)
	if !found || entry.Free {
		return nil
	}

	// Dereference decodes objects still packed in an object stream.
	o, err := r.xt.Dereference(ir)
	if err != nil || o == nil {
		return err
	}

	r.order = append(r.order, nr)
	r.numbers[nr] = len(r.order)

	return r.walk(o)
}

func (r *renumbering) walk(o types.Object) error {
	switch o := o.(type) {
	case types.IndirectRef:
		return r.visit(o)
	case types.Dict:
		for _, k := range dictKeys(o) {
			if err := r.walk(o[k]); err != nil {
				return err
			}
		}
	case types.StreamDict:
		return r.walk(o.Dict)
	case types.Array:
		for _, e := range o {
			if err := r.walk(e); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *renumbering) ref(ir *types.IndirectRef) *types.IndirectRef {
	if ir == nil {
		return nil
	}
	nr, ok := r.numbers[ir.ObjectNumber.Value()]
	if !ok {
		return nil
	}
	return types.NewIndirectRef(nr, 0)
}

// patch returns a copy of o with every reference renumbered. References to
// objects that were not reached resolve to null.
func (r *renumbering) patch(o types.Object) types.Object {
	switch o := o.(type) {
	case types.IndirectRef:
		if ir := r.ref(&o); ir != nil {
			return *ir
		}
		return nil
	case types.Dict:
		return r.patchDict(o)
	case types.StreamDict:
		o.Dict = r.patchDict(o.Dict)
		if o.StreamLengthObjNr != nil {
			if nr, ok := r.numbers[*o.StreamLengthObjNr]; ok {
				o.StreamLengthObjNr = &nr
			} else {
				o.StreamLengthObjNr = nil
			}
		}
		return o
	case types.Array:
		a := make(types.Array, len(o))
		for i, e := range o {
			a[i] = r.patch(e)
		}
		return a
	}
	return o
}

func (r *renumbering) patchDict(d types.Dict) types.Dict {
	patched := types.NewDict()
	for k, v := range d {
		if p := r.patch(v); p != nil {
			patched[k] = p
		}
	}
	return patched
}

func dictKeys(d types.Dict) []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
