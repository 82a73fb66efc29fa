package token

import "strconv"

// Kind 标识一个文本值的解析结果。
type Kind int

const (
	NotToken Kind = iota // 普通文本
	Plain                // __Name__
	Indexed              // __Base_<index>__
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Indexed:
		return "indexed"
	default:
		return "text"
	}
}

const delimiter = "__"

// Token 是占位符语法的解析结果。
//
// Kind 为 [Indexed] 时 Base 与 Index 有效；ID 始终是完整标识符。
type Token struct {
	Kind  Kind
	ID    string
	Base  string
	Index int
}

// IsToken 报告是否为占位符（Plain 或 Indexed）。
func (t Token) IsToken() bool {
	return t.Kind != NotToken
}

// String 返回占位符原文，非占位符返回空字符串。
func (t Token) String() string {
	if !t.IsToken() {
		return ""
	}

	return Format(t.ID)
}

// Format 由标识符构造占位符文本。
func Format(id string) string {
	return delimiter + id + delimiter
}

// Parse 按 __<identifier>__ 语法解析整个字符串。
//
// 占位符必须占据整个值，不做部分匹配。
// 标识符以 _<digits> 结尾且前缀非空时视为带索引的占位符。
func Parse(s string) Token {
	if len(s) <= 2*len(delimiter) {
		return Token{}
	}
	if s[:len(delimiter)] != delimiter || s[len(s)-len(delimiter):] != delimiter {
		return Token{}
	}

	id := s[len(delimiter) : len(s)-len(delimiter)]
	if !isIdentifier(id) {
		return Token{}
	}

	if base, index, ok := splitIndex(id); ok {
		return Token{Kind: Indexed, ID: id, Base: base, Index: index}
	}

	return Token{Kind: Plain, ID: id}
}

func isAlnum(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentChar(ch byte) bool {
	return isAlnum(ch) || ch == '_' || ch == '.' || ch == '-'
}

func isIdentifier(id string) bool {
	if id == "" || !isAlnum(id[0]) || !isAlnum(id[len(id)-1]) {
		return false
	}
	for i := 1; i < len(id)-1; i++ {
		if !isIdentChar(id[i]) {
			return false
		}
	}

	return true
}

// splitIndex 拆分 <base>_<digits>。
func splitIndex(id string) (string, int, bool) {
	i := len(id)
	for i > 0 && isDigit(id[i-1]) {
		i--
	}
	// 至少一位数字，前面紧跟 '_'，且 base 非空
	if i == len(id) || i < 2 || id[i-1] != '_' {
		return "", 0, false
	}

	index, err := strconv.Atoi(id[i:])
	if err != nil {
		return "", 0, false
	}

	return id[:i-1], index, true
}
