package docstore

import "strings"

// Field is the two-variant update type for sparse patches. The zero value is
// Unchanged; Set writes a value; Null writes an explicit JSON null. Keeping
// "don't touch" and "set to empty" as distinct states means a patch builder
// can never clobber a sibling field by accident.
type Field[T any] struct {
	state fieldState
	value T
}

type fieldState int

const (
	fieldUnchanged fieldState = iota
	fieldSet
	fieldNull
)

// Set returns a field that writes v.
func Set[T any](v T) Field[T] {
	return Field[T]{state: fieldSet, value: v}
}

// Null returns a field that writes an explicit JSON null.
func Null[T any]() Field[T] {
	return Field[T]{state: fieldNull}
}

// Changed reports whether the field contributes to a patch at all.
func (f Field[T]) Changed() bool { return f.state != fieldUnchanged }

// Value returns the wire value for a changed field: the set value, or nil for
// an explicit null.
func (f Field[T]) Value() any {
	if f.state == fieldSet {
		return f.value
	}
	return nil
}

// Op is one write target of a sparse patch: a dotted path into a nested
// document plus the value to place there. A nil Value writes JSON null.
type Op struct {
	Path  string
	Value any
}

// Patch is an ordered sparse update over one document. Unchanged fields are
// omitted entirely, never null-written, so sibling fields survive.
type Patch struct {
	ops []Op
}

// SetPath appends a write of value at the dotted path.
func (p *Patch) SetPath(path string, value any) {
	p.ops = append(p.ops, Op{Path: path, Value: value})
}

// SetField appends a write only when the field changed.
func SetField[T any](p *Patch, path string, f Field[T]) {
	if !f.Changed() {
		return
	}
	p.SetPath(path, f.Value())
}

// Ops returns the writes in insertion order.
func (p Patch) Ops() []Op { return p.ops }

// Empty reports whether the patch writes nothing.
func (p Patch) Empty() bool { return len(p.ops) == 0 }

// Apply materializes the patch into a decoded JSON document, creating
// intermediate objects along each path. Used by the in-memory store; the
// Postgres store translates the same ops to jsonb_set.
func (p Patch) Apply(doc map[string]any) {
	for _, op := range p.ops {
		parts := strings.Split(op.Path, ".")
		node := doc
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = op.Value
	}
}
