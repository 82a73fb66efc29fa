package tree

import (
	"iter"
	"slices"
)

// Value 是配置树节点，只会是以下类型之一：
//
//   - *Object        有序对象
//   - []any          数组，元素为 Value
//   - string
//   - Number         数字字面量（保留原文）
//   - bool
//   - nil
type Value = any

// Number 保存数字字面量原文，避免 float64 往返造成格式漂移。
type Number string

// Object 是保持插入顺序的对象。
//
// 零值不可用，请使用 [NewObject]。
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject 创建空对象，可选传入交替的 key/value 初始化。
//
//	tree.NewObject("Endpoint", "e1", "Key", "k1")
func NewObject(pairs ...any) *Object {
	o := &Object{values: make(map[string]Value, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		key, _ := pairs[i].(string)
		o.Set(key, pairs[i+1])
	}

	return o
}

// Set 写入 key；已存在的 key 保持原位置。
func (o *Object) Set(key string, v Value) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get 读取 key。
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has 报告 key 是否存在。
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Len 返回 key 数量。
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys 返回 key 的副本，顺序即插入顺序。
func (o *Object) Keys() []string {
	return slices.Clone(o.keys)
}

// All 按顺序遍历键值对。
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, key := range o.keys {
			if !yield(key, o.values[key]) {
				return
			}
		}
	}
}

// Section 返回名为 key 的子对象，不存在或类型不符时返回 nil。
func (o *Object) Section(key string) *Object {
	if o == nil {
		return nil
	}
	child, _ := o.values[key].(*Object)

	return child
}

// Clone 深拷贝一个节点。
func Clone(v Value) Value {
	switch typed := v.(type) {
	case *Object:
		if typed == nil {
			return (*Object)(nil)
		}
		out := &Object{
			keys:   slices.Clone(typed.keys),
			values: make(map[string]Value, len(typed.values)),
		}
		for key, child := range typed.values {
			out.values[key] = Clone(child)
		}

		return out
	case []any:
		if typed == nil {
			return []any(nil)
		}
		out := make([]any, len(typed))
		for i, child := range typed {
			out[i] = Clone(child)
		}

		return out
	default:
		return v
	}
}

// Equal 比较两个节点，对象 key 顺序也参与比较。
func Equal(a, b Value) bool {
	switch ta := a.(type) {
	case *Object:
		tb, ok := b.(*Object)
		if !ok || ta.Len() != tb.Len() {
			return false
		}
		for i, key := range ta.keys {
			if tb.keys[i] != key || !Equal(ta.values[key], tb.values[key]) {
				return false
			}
		}

		return true
	case []any:
		tb, ok := b.([]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for i := range ta {
			if !Equal(ta[i], tb[i]) {
				return false
			}
		}

		return true
	default:
		return a == b
	}
}

// Plain 将节点转换为 map[string]any / []any 形式，供 mapstructure 等按 map 处理的库使用。
//
// Number 会尽量转换为 int64 或 float64。
func Plain(v Value) any {
	switch typed := v.(type) {
	case *Object:
		out := make(map[string]any, typed.Len())
		for key, child := range typed.All() {
			out[key] = Plain(child)
		}

		return out
	case []any:
		out := make([]any, len(typed))
		for i, child := range typed {
			out[i] = Plain(child)
		}

		return out
	case Number:
		return typed.native()
	default:
		return v
	}
}
