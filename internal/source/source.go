// Package source 收集占位符的替换值。
//
// 值来自环境变量（含 dotenv 文件）或交互提示，二者都实现 [Source]；
// 解析引擎只依赖收集结果 [resolve.Replacements]，不接触任何 I/O。
package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/schema"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/resolve"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/token"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/tree"
)

// Source 查找单个令牌的取值。
//
// 未找到时返回 ok=false 且 err=nil。
type Source interface {
	Lookup(ctx context.Context, tok schema.Token) (b resolve.Binding, ok bool, err error)
}

// Chain 依次查询多个 Source，首个命中的生效。
type Chain []Source

// Lookup 实现 [Source]。
func (c Chain) Lookup(ctx context.Context, tok schema.Token) (resolve.Binding, bool, error) {
	for _, src := range c {
		b, ok, err := src.Lookup(ctx, tok)
		if err != nil || ok {
			return b, ok, err
		}
	}

	return resolve.Binding{}, false, nil
}

// Requests 计算模板需要收集的令牌。
//
// 先按 schema 顺序列出模板中用到的已知令牌，再按模板顺序追加未知令牌；
// 未知的带索引占位符（如 __Upstreams_0__）按其 base 作为列表请求。
func Requests(tmpl tree.Value, sch schema.Schema) []schema.Token {
	scanned := resolve.Scan(tmpl)

	used := make(map[string]bool, len(scanned)*2)
	for _, tok := range scanned {
		used[tok.ID] = true
		if tok.Kind == token.Indexed {
			used[tok.Base] = true
		}
	}

	known := make(map[string]bool, len(sch.Tokens))
	var reqs []schema.Token
	for _, tok := range sch.Tokens {
		known[tok.Name] = true
		if used[tok.Name] {
			reqs = append(reqs, tok)
		}
	}

	for _, tok := range scanned {
		if known[tok.ID] || (tok.Kind == token.Indexed && known[tok.Base]) {
			continue
		}
		req := schema.Token{Name: tok.ID}
		if tok.Kind == token.Indexed {
			req = schema.Token{Name: tok.Base, List: true}
		}
		known[req.Name] = true
		reqs = append(reqs, req)
	}

	return reqs
}

// Collect 为每个请求查询 Source，返回收集到的替换表。
//
// 未找到的令牌不记录，解析时按原样保留。
func Collect(ctx context.Context, src Source, reqs []schema.Token) (resolve.Replacements, error) {
	out := make(resolve.Replacements, len(reqs))
	for _, tok := range reqs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		b, ok, err := src.Lookup(ctx, tok)
		if err != nil {
			return nil, fmt.Errorf("lookup %s: %w", tok.Name, err)
		}
		if !ok {
			slog.Debug("Token unbound", "token", tok.Name)

			continue
		}
		out[tok.Name] = b
		slog.Debug("Token bound", "token", tok.Name, "list", b.IsSequence(), "items", b.Len())
	}

	return out, nil
}

// Missing 返回 names 中在 Source 里找不到的名称；令牌类型取自 schema，未声明的按标量处理。
func Missing(ctx context.Context, src Source, sch schema.Schema, names []string) ([]string, error) {
	var missing []string
	for _, name := range names {
		tok, ok := sch.Lookup(name)
		if !ok {
			tok = schema.Token{Name: name}
		}
		_, found, err := src.Lookup(ctx, tok)
		if err != nil {
			return nil, fmt.Errorf("lookup %s: %w", name, err)
		}
		if !found {
			missing = append(missing, name)
		}
	}

	return missing, nil
}
