package templexp

import (
	"fmt"
	"os"
	"strings"
)

// Environ 返回当前进程环境变量快照。
func Environ() map[string]string {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if name, val, ok := strings.Cut(kv, "="); ok {
			vars[name] = val
		}
	}

	return vars
}

// ExpandTemplate 使用进程环境变量快照展开 text，等价于 Expand(text, Environ())。
func ExpandTemplate(text string) (string, error) {
	return Expand(text, Environ())
}

// Expand 对 text 执行 Shell 参数展开。
//
// 支持语法：
//   - ${VAR} - 变量替换，未设置时为空
//   - ${VAR:-word} / ${VAR-word} - 默认值
//   - ${VAR:+word} / ${VAR+word} - 替代值
//   - ${VAR:?msg} / ${VAR?msg} - 必填校验
//   - ${VAR:=word} / ${VAR=word} - 赋值，写入 vars
//   - $$ - 字面量 $
//
// 带冒号的形式把空值视为未设置。无法识别的表达式原样保留；
// 仅在必填校验失败时返回 error。
func Expand(text string, vars map[string]string) (string, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	e := expander{vars: vars}

	return e.expand(text)
}

type expander struct {
	vars map[string]string
}

func (e expander) expand(text string) (string, error) {
	if !strings.Contains(text, "$") {
		return text, nil
	}

	var b strings.Builder
	b.Grow(len(text))

	for {
		i := strings.IndexByte(text, '$')
		if i < 0 || i == len(text)-1 {
			b.WriteString(text)

			return b.String(), nil
		}
		b.WriteString(text[:i])
		text = text[i:]

		switch text[1] {
		case '$':
			b.WriteByte('$')
			text = text[2:]

			continue
		case '{':
		default:
			b.WriteByte('$')
			text = text[1:]

			continue
		}

		end := closingBrace(text)
		if end < 0 {
			b.WriteString(text)

			return b.String(), nil
		}

		out, ok, err := e.parameter(text[2:end])
		if err != nil {
			return "", err
		}
		if ok {
			b.WriteString(out)
		} else {
			b.WriteString(text[:end+1])
		}
		text = text[end+1:]
	}
}

// closingBrace 返回 text（以 "${" 开头）中与之匹配的 "}" 下标，允许嵌套。
func closingBrace(text string) int {
	depth := 0
	for i := 2; i < len(text); i++ {
		switch {
		case text[i] == '$' && i+1 < len(text) && text[i+1] == '{':
			depth++
			i++
		case text[i] == '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}

	return -1
}

// parameter 展开花括号内的表达式；ok=false 表示表达式无法识别。
func (e expander) parameter(expr string) (string, bool, error) {
	name, op, word, ok := splitParameter(expr)
	if !ok {
		return "", false, nil
	}

	val, set := e.vars[name]
	unset := !set
	if strings.HasPrefix(op, ":") {
		unset = unset || val == ""
	}

	var out string
	var err error
	switch strings.TrimPrefix(op, ":") {
	case "":
		out = val
	case "-":
		out = val
		if unset {
			out, err = e.expand(word)
		}
	case "=":
		out = val
		if unset {
			if out, err = e.expand(word); err == nil {
				e.vars[name] = out
			}
		}
	case "+":
		if !unset {
			out, err = e.expand(word)
		}
	case "?":
		if unset {
			if word == "" {
				word = "parameter null or not set"
			}
			err = fmt.Errorf("templexp: %s: %s", name, word)
		}
		out = val
	}
	if err != nil {
		return "", false, err
	}

	return out, true, nil
}

// splitParameter 将 "NAME:-word" 拆分为名称、操作符与 word。
func splitParameter(expr string) (name, op, word string, ok bool) {
	i := 0
	for i < len(expr) && isNameByte(expr[i], i == 0) {
		i++
	}
	if i == 0 {
		return "", "", "", false
	}
	name, rest := expr[:i], expr[i:]
	if rest == "" {
		return name, "", "", true
	}

	n := 1
	if rest[0] == ':' {
		n = 2
	}
	if len(rest) < n || !strings.ContainsRune("-=+?", rune(rest[n-1])) {
		return "", "", "", false
	}

	return name, rest[:n], rest[n:], true
}

func isNameByte(c byte, first bool) bool {
	switch {
	case c == '_', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		return true
	case c >= '0' && c <= '9':
		return !first
	default:
		return false
	}
}
