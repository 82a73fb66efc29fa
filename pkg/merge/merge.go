package merge

import (
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/tree"
)

// Rule 描述需要在重新生成时保留旧值的 key。
//
// Section 为顶层对象名（例如 "Settings"），Keys 为该对象下的 key 白名单。
type Rule struct {
	Section string   `json:"section" desc:"顶层配置节"`
	Keys    []string `json:"keys" desc:"保留旧值的 key 列表"`
}

// Merge 将已有输出中白名单 key 的值回填到新解析的配置树。
//
// existing 为 nil 时原样返回 resolved；否则返回 resolved 的副本，
// 其中同时存在于两边对应配置节的白名单 key 使用 existing 的值。
// 白名单之外的 key、以及旧文件中缺失的白名单 key 保持新值；
// 模板已删除的 key 不会被重新加回。
func Merge(resolved, existing tree.Value, rules ...Rule) tree.Value {
	if existing == nil {
		return resolved
	}
	oldRoot, ok := existing.(*tree.Object)
	if !ok {
		return resolved
	}
	if _, ok := resolved.(*tree.Object); !ok {
		return resolved
	}

	out := tree.Clone(resolved).(*tree.Object)
	for _, rule := range rules {
		apply(out.Section(rule.Section), oldRoot.Section(rule.Section), rule.Keys)
	}

	return out
}

// Preserved 返回 Merge 实际会回填的 "section.key" 列表，用于日志。
func Preserved(resolved, existing tree.Value, rules ...Rule) []string {
	newRoot, ok := resolved.(*tree.Object)
	if !ok {
		return nil
	}
	oldRoot, ok := existing.(*tree.Object)
	if !ok {
		return nil
	}

	var out []string
	for _, rule := range rules {
		dst, src := newRoot.Section(rule.Section), oldRoot.Section(rule.Section)
		if dst == nil || src == nil {
			continue
		}
		for _, key := range rule.Keys {
			if dst.Has(key) && src.Has(key) {
				out = append(out, rule.Section+"."+key)
			}
		}
	}

	return out
}

func apply(dst, src *tree.Object, keys []string) {
	if dst == nil || src == nil {
		return
	}
	for _, key := range keys {
		if !dst.Has(key) {
			continue
		}
		if old, ok := src.Get(key); ok {
			dst.Set(key, tree.Clone(old))
		}
	}
}
