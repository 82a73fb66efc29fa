// Package resolve 实现配置模板的占位符替换与数组展开。
//
// 模板中的字符串值若整体匹配 __<identifier>__，即按 [Replacements] 替换；
// 形如 ["__Services_0__"] 的单元素数组会展开为整个服务列表：
//
//	tmpl := tree.NewObject("Services", []any{"__Services_0__"}, "Domain", "__Auth_Domain__")
//	out := resolve.Resolve(tmpl, resolve.Replacements{
//	    "Services":    resolve.Sequence(tree.NewObject("Endpoint", "e1", "Key", "k1")),
//	    "Auth_Domain": resolve.Scalar("example.com"),
//	})
//
// 未绑定的占位符不视为错误，原样保留在输出中。
package resolve
