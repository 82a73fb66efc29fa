package resolve

import (
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/token"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/tree"
)

// Resolve 返回替换占位符后的新配置树，不修改输入。
//
// 规则按优先级依次匹配：
//  1. 单元素数组且元素为 __<base>_0__，base 绑定为序列 → 整个数组替换为该序列
//  2. 其它数组 → 逐元素递归
//  3. 对象 → 逐值递归，key 顺序不变，key 本身不替换
//  4. 完整占位符文本：带索引且 base 为序列 → 整个序列；ID 为标量 → 标量；否则原样保留
//  5. 其它标量 → 原样返回
//
// 替换进来的序列元素视为已解析，不再递归。
func Resolve(v tree.Value, r Replacements) tree.Value {
	switch typed := v.(type) {
	case []any:
		if items, ok := expandSingleton(typed, r); ok {
			return items
		}
		out := make([]any, len(typed))
		for i, child := range typed {
			out[i] = Resolve(child, r)
		}

		return out
	case *tree.Object:
		if typed == nil {
			return typed
		}
		out := tree.NewObject()
		for key, child := range typed.All() {
			out.Set(key, Resolve(child, r))
		}

		return out
	case string:
		return resolveText(typed, r)
	default:
		return v
	}
}

func expandSingleton(arr []any, r Replacements) ([]any, bool) {
	if len(arr) != 1 {
		return nil, false
	}
	text, ok := arr[0].(string)
	if !ok {
		return nil, false
	}

	tok := token.Parse(text)
	if tok.Kind != token.Indexed || tok.Index != 0 {
		return nil, false
	}

	return r.sequence(tok.Base)
}

func resolveText(text string, r Replacements) tree.Value {
	tok := token.Parse(text)
	if !tok.IsToken() {
		return text
	}

	if tok.Kind == token.Indexed {
		if items, ok := r.sequence(tok.Base); ok {
			return items
		}
	}
	if v, ok := r.scalar(tok.ID); ok {
		return v
	}

	// 未绑定的占位符原样保留，留给人工补全或就绪检查
	return text
}

// Scan 按文档顺序返回模板中出现的占位符，重复项只保留首次出现。
func Scan(v tree.Value) []token.Token {
	seen := make(map[string]bool)
	var out []token.Token
	walkText(v, func(text string) {
		tok := token.Parse(text)
		if !tok.IsToken() || seen[tok.ID] {
			return
		}
		seen[tok.ID] = true
		out = append(out, tok)
	})

	return out
}

// Unresolved 返回树中仍残留的占位符标识符。
func Unresolved(v tree.Value) []string {
	toks := Scan(v)
	ids := make([]string, 0, len(toks))
	for _, tok := range toks {
		ids = append(ids, tok.ID)
	}

	return ids
}

func walkText(v tree.Value, fn func(string)) {
	switch typed := v.(type) {
	case *tree.Object:
		if typed == nil {
			return
		}
		for _, child := range typed.All() {
			walkText(child, fn)
		}
	case []any:
		for _, child := range typed {
			walkText(child, fn)
		}
	case string:
		fn(typed)
	}
}
