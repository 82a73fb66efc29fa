package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	yamlv3 "go.yaml.in/yaml/v3"
)

// Encode 按格式写出配置树，对象 key 顺序保持不变。
func Encode(w io.Writer, v Value, format Format) error {
	if format == YAML {
		return EncodeYAML(w, v)
	}

	return EncodeJSON(w, v)
}

// EncodeJSON 以两空格缩进写出 JSON，不转义 HTML 字符。
func EncodeJSON(w io.Writer, v Value) error {
	var compact bytes.Buffer
	if err := appendJSON(&compact, v); err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return fmt.Errorf("indent json: %w", err)
	}
	out.WriteByte('\n')

	_, err := w.Write(out.Bytes())

	return err
}

// EncodeYAML 以两空格缩进写出 YAML。
func EncodeYAML(w io.Writer, v Value) error {
	node, err := toNode(v)
	if err != nil {
		return err
	}

	enc := yamlv3.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return enc.Close()
}

// MarshalJSON 实现 json.Marshaler，输出紧凑 JSON。
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := appendJSON(&buf, o); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// MarshalJSON 原样输出数字字面量；非法字面量按字符串输出。
func (n Number) MarshalJSON() ([]byte, error) {
	if isJSONNumber(string(n)) {
		return []byte(n), nil
	}

	var buf bytes.Buffer
	err := appendString(&buf, string(n))

	return buf.Bytes(), err
}

func appendJSON(buf *bytes.Buffer, v Value) error {
	switch typed := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(typed))
	case string:
		return appendString(buf, typed)
	case Number:
		raw, err := typed.MarshalJSON()
		if err != nil {
			return err
		}
		buf.Write(raw)
	case *Object:
		if typed == nil {
			buf.WriteString("null")

			return nil
		}
		buf.WriteByte('{')
		i := 0
		for key, child := range typed.All() {
			if i > 0 {
				buf.WriteByte(',')
			}
			i++
			if err := appendString(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := appendJSON(buf, child); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, child := range typed {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendJSON(buf, child); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		// 非树类型（例如调用方直接放入的 int）交给 encoding/json
		raw, err := json.Marshal(typed)
		if err != nil {
			return fmt.Errorf("encode %T: %w", typed, err)
		}
		buf.Write(raw)
	}

	return nil
}

func appendString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))

	return nil
}

func toNode(v Value) (*yamlv3.Node, error) {
	switch typed := v.(type) {
	case nil:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case bool:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(typed)}, nil
	case string:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!str", Value: typed}, nil
	case Number:
		tag := "!!float"
		if _, err := strconv.ParseInt(string(typed), 10, 64); err == nil {
			tag = "!!int"
		}

		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: tag, Value: string(typed)}, nil
	case *Object:
		node := &yamlv3.Node{Kind: yamlv3.MappingNode, Tag: "!!map"}
		if typed == nil {
			return node, nil
		}
		for key, child := range typed.All() {
			valueNode, err := toNode(child)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content,
				&yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!str", Value: key},
				valueNode,
			)
		}

		return node, nil
	case []any:
		node := &yamlv3.Node{Kind: yamlv3.SequenceNode, Tag: "!!seq"}
		for _, child := range typed {
			childNode, err := toNode(child)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, childNode)
		}

		return node, nil
	default:
		node := &yamlv3.Node{}
		if err := node.Encode(typed); err != nil {
			return nil, fmt.Errorf("encode %T: %w", typed, err)
		}

		return node, nil
	}
}
