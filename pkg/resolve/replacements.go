package resolve

import (
	"slices"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/tree"
)

// Binding 是一个标识符的取值：标量或序列。
type Binding struct {
	scalar   tree.Value
	items    []tree.Value
	sequence bool
}

// Scalar 构造标量绑定，通常为 string。
func Scalar(v tree.Value) Binding {
	return Binding{scalar: v}
}

// Sequence 构造序列绑定，元素一般为 *tree.Object（例如 {Endpoint, Key}）。
func Sequence(items ...tree.Value) Binding {
	return Binding{items: slices.Clone(items), sequence: true}
}

// IsSequence 报告是否为序列绑定。
func (b Binding) IsSequence() bool {
	return b.sequence
}

// Value 返回标量值；序列绑定返回 nil。
func (b Binding) Value() tree.Value {
	return b.scalar
}

// Items 返回序列元素的深拷贝。
func (b Binding) Items() []tree.Value {
	out := make([]tree.Value, len(b.items))
	for i, item := range b.items {
		out[i] = tree.Clone(item)
	}

	return out
}

// Len 返回序列长度，标量为 0。
func (b Binding) Len() int {
	return len(b.items)
}

// Replacements 标识符到取值的映射。
//
// 解析器不限制标识符的范围，未出现的标识符只是无法替换。
type Replacements map[string]Binding

func (r Replacements) sequence(base string) ([]any, bool) {
	b, ok := r[base]
	if !ok || !b.sequence {
		return nil, false
	}

	return b.Items(), true
}

func (r Replacements) scalar(id string) (tree.Value, bool) {
	b, ok := r[id]
	if !ok || b.sequence {
		return nil, false
	}

	return tree.Clone(b.scalar), true
}
