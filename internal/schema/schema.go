// Package schema 描述模板渲染所需的令牌清单与默认值保留规则。
package schema

import (
	"slices"
	"strings"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/merge"
)

// Schema 渲染与就绪检查共用的配置。
type Schema struct {
	Tokens    []Token      `json:"tokens" desc:"已知令牌"`
	Preserve  []merge.Rule `json:"preserve" desc:"重新生成时保留旧值的 key"`
	Readiness Readiness    `json:"readiness" desc:"就绪检查"`
}

// Token 描述一个可替换的标识符。
type Token struct {
	Name     string   `json:"name" desc:"标识符，例如 AuthSettings_Domain"`
	Env      string   `json:"env" desc:"对应的层级环境变量名，例如 AuthSettings__Domain"`
	Prompt   string   `json:"prompt" desc:"交互提示文本"`
	List     bool     `json:"list" desc:"是否为服务列表"`
	Fields   []string `json:"fields" desc:"列表元素字段"`
	Required bool     `json:"required" desc:"生产环境必填"`
	Secret   bool     `json:"secret" desc:"输入时隐藏"`
}

// Readiness 就绪检查配置。
type Readiness struct {
	// Environments 中列出的环境才强制要求必填令牌。
	Environments []string `json:"environments" desc:"强制检查的目标环境"`
}

// EnvName 返回令牌对应的层级环境变量名，未声明时使用标识符本身。
func (t Token) EnvName() string {
	if t.Env != "" {
		return t.Env
	}

	return t.Name
}

// Label 返回提示文本，未声明时由标识符生成。
func (t Token) Label() string {
	if t.Prompt != "" {
		return t.Prompt
	}

	return "Enter " + strings.ReplaceAll(t.Name, "_", " ")
}

// Lookup 按名称查找令牌。
func (s Schema) Lookup(name string) (Token, bool) {
	i := slices.IndexFunc(s.Tokens, func(t Token) bool { return t.Name == name })
	if i < 0 {
		return Token{}, false
	}

	return s.Tokens[i], true
}

// Names 返回全部令牌名，顺序与声明一致。
func (s Schema) Names() []string {
	names := make([]string, len(s.Tokens))
	for i, t := range s.Tokens {
		names[i] = t.Name
	}

	return names
}

// Required 返回必填令牌名。
func (s Schema) Required() []string {
	var names []string
	for _, t := range s.Tokens {
		if t.Required {
			names = append(names, t.Name)
		}
	}

	return names
}

// Enforced 报告目标环境是否强制就绪检查（大小写不敏感）。
func (s Schema) Enforced(environment string) bool {
	return slices.ContainsFunc(s.Readiness.Environments, func(env string) bool {
		return strings.EqualFold(env, environment)
	})
}
