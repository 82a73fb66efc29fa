// Package render 实现模板渲染流程：
//
//	读取模板 → 收集替换值 → 解析占位符 → 回填旧默认值 → 写出
//
// 任一步骤失败都不会产生输出文件。
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/google/renameio/v2"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/schema"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/source"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/merge"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/resolve"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/tree"
)

// ErrEmptyTemplate 模板文件没有任何内容。
var ErrEmptyTemplate = errors.New("template is empty")

// Options 一次渲染的输入。
type Options struct {
	Template string        // 模板路径
	Output   string        // 输出路径，扩展名决定输出格式
	Existing string        // 旧输出路径，为空时使用 Output
	Schema   schema.Schema // 令牌清单与保留规则
	Source   source.Source // 替换值来源
}

// Result 渲染结果摘要。
type Result struct {
	Output     string
	Requested  []string
	Bound      []string
	Unresolved []string
	Preserved  []string
	Tree       tree.Value
}

// Run 执行一次完整渲染。
func Run(ctx context.Context, opts Options) (*Result, error) {
	tmpl, err := LoadTemplate(opts.Template)
	if err != nil {
		return nil, err
	}

	reqs := source.Requests(tmpl, opts.Schema)
	repl, err := source.Collect(ctx, opts.Source, reqs)
	if err != nil {
		return nil, fmt.Errorf("collect replacements: %w", err)
	}

	res := &Result{Output: opts.Output}
	for _, tok := range reqs {
		res.Requested = append(res.Requested, tok.Name)
		if _, ok := repl[tok.Name]; ok {
			res.Bound = append(res.Bound, tok.Name)
		}
	}

	resolved := resolve.Resolve(tmpl, repl)

	existingPath := opts.Existing
	if existingPath == "" {
		existingPath = opts.Output
	}
	existing := LoadExisting(existingPath)

	res.Preserved = merge.Preserved(resolved, existing, opts.Schema.Preserve...)
	res.Tree = merge.Merge(resolved, existing, opts.Schema.Preserve...)
	if len(res.Preserved) > 0 {
		slog.Info("Preserved existing defaults", "path", existingPath, "keys", res.Preserved)
	}

	res.Unresolved = resolve.Unresolved(res.Tree)
	if len(res.Unresolved) > 0 {
		slog.Warn("Tokens left unresolved", "tokens", res.Unresolved)
	}

	if err := WriteFile(opts.Output, res.Tree); err != nil {
		return nil, err
	}
	slog.Info("Rendered config", "template", opts.Template, "output", opts.Output,
		"bound", len(res.Bound), "unresolved", len(res.Unresolved))

	return res, nil
}

// LoadTemplate 读取并解析模板；文件缺失、格式错误或内容为空都返回错误。
func LoadTemplate(path string) (tree.Value, error) {
	tmpl, err := tree.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}
	if tmpl == nil {
		return nil, fmt.Errorf("load template %s: %w", path, ErrEmptyTemplate)
	}

	return tmpl, nil
}

// LoadExisting 读取上次生成的输出。
//
// 文件不存在返回 nil；无法解析时记录警告并同样返回 nil。
func LoadExisting(path string) tree.Value {
	if path == "" {
		return nil
	}

	v, err := tree.ParseFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Ignoring unreadable existing output", "path", path, "error", err)
		}

		return nil
	}

	return v
}

// WriteFile 按扩展名编码 v 并原子写入 path。
func WriteFile(path string, v tree.Value) error {
	return WriteAtomic(path, func(w io.Writer) error {
		if err := tree.Encode(w, v, tree.FormatOf(path)); err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}

		return nil
	})
}

// WriteAtomic 先写入同目录临时文件再 rename 到 path，权限 0600。
//
// write 失败时 path 保持原样。
func WriteAtomic(path string, write func(io.Writer) error) error {
	f, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o600))
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer func() { _ = f.Cleanup() }()

	if err := write(f); err != nil {
		return err
	}
	if err := f.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
