package source

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/schema"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/resolve"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/tree"
)

// mangler 将层级环境变量名折叠为令牌标识符：
//
//	Settings__DbConnectionString → Settings_DbConnectionString
//	AzureAd:TenantId             → AzureAd_TenantId
var mangler = strings.NewReplacer("__", "_", ":", "_")

// Mangle 返回环境变量名对应的令牌标识符。
func Mangle(name string) string {
	return mangler.Replace(name)
}

// Env 基于环境变量快照的 [Source]。
//
// 空值视为未设置。列表令牌读取 <Base>_<i>_<Field>，i 从 0 递增直到某个索引没有任何字段。
type Env struct {
	vars map[string]string
}

type envOptions struct {
	prefix  string
	environ []string
	dotenv  string
}

// EnvOption 环境变量源选项。
type EnvOption func(*envOptions)

// WithPrefix 只读取带前缀的进程环境变量，并在匹配前去掉前缀。
func WithPrefix(prefix string) EnvOption {
	return func(o *envOptions) {
		o.prefix = prefix
	}
}

// WithEnviron 使用给定的 KEY=VALUE 列表代替 os.Environ()。
func WithEnviron(environ []string) EnvOption {
	return func(o *envOptions) {
		o.environ = environ
	}
}

// WithDotEnv 额外读取 dotenv 文件；进程环境变量优先。
//
// 文件中的变量不受前缀限制。
func WithDotEnv(path string) EnvOption {
	return func(o *envOptions) {
		o.dotenv = path
	}
}

// NewEnv 创建环境变量快照。
func NewEnv(opts ...EnvOption) (*Env, error) {
	o := &envOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.environ == nil {
		o.environ = os.Environ()
	}

	e := &Env{vars: make(map[string]string)}

	if o.dotenv != "" {
		fileVars, err := ReadDotEnvFile(o.dotenv)
		if err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
		for name, val := range fileVars {
			e.set(name, val)
		}
	}

	for _, kv := range o.environ {
		name, val, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if o.prefix != "" {
			if name, ok = strings.CutPrefix(name, o.prefix); !ok {
				continue
			}
		}
		e.set(name, val)
	}

	return e, nil
}

func (e *Env) set(name, val string) {
	if name == "" || val == "" {
		return
	}
	e.vars[Mangle(name)] = val
}

// Len 返回快照中的变量数量。
func (e *Env) Len() int {
	return len(e.vars)
}

// Lookup 实现 [Source]。
func (e *Env) Lookup(_ context.Context, tok schema.Token) (resolve.Binding, bool, error) {
	candidates := []string{tok.Name}
	if mangled := Mangle(tok.EnvName()); mangled != tok.Name {
		candidates = append(candidates, mangled)
	}

	for _, key := range candidates {
		if tok.List {
			if items := e.records(key, tok.Fields); len(items) > 0 {
				return resolve.Sequence(items...), true, nil
			}

			continue
		}
		if val, ok := e.vars[key]; ok {
			return resolve.Scalar(val), true, nil
		}
	}

	return resolve.Binding{}, false, nil
}

func (e *Env) records(base string, fields []string) []tree.Value {
	var items []tree.Value
	for i := 0; ; i++ {
		prefix := base + "_" + strconv.Itoa(i) + "_"
		found := make(map[string]string)
		for key, val := range e.vars {
			if field, ok := strings.CutPrefix(key, prefix); ok && field != "" {
				found[field] = val
			}
		}
		if len(found) == 0 {
			return items
		}
		items = append(items, record(found, fields))
	}
}

// record 按声明字段顺序构造元素，其余字段按名称排序追加。
func record(found map[string]string, fields []string) *tree.Object {
	obj := tree.NewObject()
	for _, field := range fields {
		if val, ok := found[field]; ok {
			obj.Set(field, val)
			delete(found, field)
		}
	}

	rest := make([]string, 0, len(found))
	for field := range found {
		rest = append(rest, field)
	}
	slices.Sort(rest)
	for _, field := range rest {
		obj.Set(field, found[field])
	}

	return obj
}
