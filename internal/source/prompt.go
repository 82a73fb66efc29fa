package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/schema"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/resolve"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/tree"
)

// Question 一次输入提示。
type Question struct {
	Label    string
	Secret   bool
	Optional bool
}

// Prompter 交互输入接口，终端实现见 internal/prompt。
type Prompter interface {
	Ask(ctx context.Context, q Question) (string, error)
	Confirm(ctx context.Context, text string) (bool, error)
}

// defaultFields 未声明字段的列表令牌按服务凭据块处理。
var defaultFields = []string{"Endpoint", "Key"}

// Prompt 通过 [Prompter] 逐个询问令牌的 [Source]。
//
// 空白回答视为未提供。
type Prompt struct {
	prompter Prompter
}

// NewPrompt 创建交互源。
func NewPrompt(p Prompter) *Prompt {
	return &Prompt{prompter: p}
}

// Lookup 实现 [Source]。
func (s *Prompt) Lookup(ctx context.Context, tok schema.Token) (resolve.Binding, bool, error) {
	if tok.List {
		return s.list(ctx, tok)
	}

	answer, err := s.prompter.Ask(ctx, Question{
		Label:    tok.Label(),
		Secret:   tok.Secret,
		Optional: !tok.Required,
	})
	if err != nil {
		return resolve.Binding{}, false, err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return resolve.Binding{}, false, nil
	}

	return resolve.Scalar(answer), true, nil
}

// list 先询问第一个元素，之后每次确认是否继续添加；
// 某个元素全部留空时结束。
func (s *Prompt) list(ctx context.Context, tok schema.Token) (resolve.Binding, bool, error) {
	fields := tok.Fields
	if len(fields) == 0 {
		fields = defaultFields
	}
	noun := tok.Prompt
	if noun == "" {
		noun = strings.ReplaceAll(tok.Name, "_", " ") + " entry"
	}

	var items []tree.Value
	for {
		rec := tree.NewObject()
		empty := true
		for _, field := range fields {
			answer, err := s.prompter.Ask(ctx, Question{
				Label:    fmt.Sprintf("Enter the %s %s", noun, strings.ToLower(field)),
				Secret:   tok.Secret || isSecretField(field),
				Optional: !tok.Required || len(items) > 0,
			})
			if err != nil {
				return resolve.Binding{}, false, err
			}
			answer = strings.TrimSpace(answer)
			if answer != "" {
				empty = false
			}
			rec.Set(field, answer)
		}
		if empty {
			break
		}
		items = append(items, rec)

		more, err := s.prompter.Confirm(ctx, fmt.Sprintf("Would you like to add another %s?", noun))
		if err != nil {
			return resolve.Binding{}, false, err
		}
		if !more {
			break
		}
	}

	if len(items) == 0 {
		return resolve.Binding{}, false, nil
	}

	return resolve.Sequence(items...), true, nil
}

func isSecretField(field string) bool {
	lower := strings.ToLower(field)
	for _, suffix := range []string{"key", "secret", "password", "token"} {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}

	return false
}
