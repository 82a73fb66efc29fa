package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	yamlv3 "go.yaml.in/yaml/v3"
)

// ErrSyntax 表示文档无法解析为配置树。
var ErrSyntax = errors.New("malformed document")

// Format 文档格式。
type Format int

const (
	JSON Format = iota // json
	YAML               // yaml
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}

	return "json"
}

// FormatOf 根据扩展名判断格式：.json / .jsonc 为 JSON，其余按 YAML 处理。
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return JSON
	default:
		return YAML
	}
}

// ParseFile 读取并解析文件，格式由 [FormatOf] 决定。
//
// 读取失败时返回的错误包装了底层错误，可用 errors.Is(err, fs.ErrNotExist) 判断。
func ParseFile(path string) (Value, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from CLI/config
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	v, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return v, nil
}

// Parse 解析文档。空文档返回 (nil, nil)。
//
// JSON 输入允许注释与尾随逗号（JSONC）。
func Parse(data []byte, format Format) (Value, error) {
	if format == YAML {
		return decodeYAML(data)
	}

	return decodeJSON(data)
}

func decodeJSON(data []byte) (Value, error) {
	stripped := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(stripped)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(stripped))
	dec.UseNumber()

	v, err := readJSON(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after top-level value", ErrSyntax)
	}

	return v, nil
}

func readJSON(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}

		return nil, err
	}

	switch typed := tok.(type) {
	case json.Delim:
		switch typed {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key must be string, got %v", keyTok)
				}
				child, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, child)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}

			return obj, nil
		case '[':
			arr := []any{}
			for dec.More() {
				child, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, child)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}

			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", typed)
		}
	case json.Number:
		return Number(typed), nil
	default:
		// string / bool / nil
		return typed, nil
	}
}

func decodeYAML(data []byte) (Value, error) {
	var doc yamlv3.Node
	if err := yamlv3.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	d := nodeDecoder{visiting: map[*yamlv3.Node]bool{}}
	v, err := d.decode(doc.Content[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	return v, nil
}

type nodeDecoder struct {
	visiting map[*yamlv3.Node]bool
}

func (d nodeDecoder) decode(n *yamlv3.Node) (Value, error) {
	switch n.Kind {
	case yamlv3.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}

		return d.decode(n.Content[0])
	case yamlv3.AliasNode:
		if d.visiting[n.Alias] {
			return nil, fmt.Errorf("line %d: recursive alias %q", n.Line, n.Value)
		}
		d.visiting[n.Alias] = true
		defer delete(d.visiting, n.Alias)

		return d.decode(n.Alias)
	case yamlv3.MappingNode:
		return d.mapping(n)
	case yamlv3.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			child, err := d.decode(item)
			if err != nil {
				return nil, err
			}
			arr = append(arr, child)
		}

		return arr, nil
	case yamlv3.ScalarNode:
		return scalarValue(n), nil
	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

// mapping 解码映射节点，合并键（<<）展开到所在位置，显式键优先。
func (d nodeDecoder) mapping(n *yamlv3.Node) (*Object, error) {
	explicit := make(map[string]bool)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if !isMergeKey(n.Content[i]) {
			explicit[n.Content[i].Value] = true
		}
	}

	obj := NewObject()
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind != yamlv3.ScalarNode {
			return nil, fmt.Errorf("line %d: object key must be scalar", keyNode.Line)
		}
		child, err := d.decode(valNode)
		if err != nil {
			return nil, err
		}
		if !isMergeKey(keyNode) {
			obj.Set(keyNode.Value, child)

			continue
		}

		sources, err := mergeSources(child, keyNode.Line)
		if err != nil {
			return nil, err
		}
		// 序列中靠前的映射优先
		for _, src := range sources {
			for key, val := range src.All() {
				if !explicit[key] && !obj.Has(key) {
					obj.Set(key, val)
				}
			}
		}
	}

	return obj, nil
}

func isMergeKey(n *yamlv3.Node) bool {
	return n.Kind == yamlv3.ScalarNode && n.ShortTag() == "!!merge"
}

func mergeSources(v Value, line int) ([]*Object, error) {
	switch typed := v.(type) {
	case *Object:
		return []*Object{typed}, nil
	case []any:
		out := make([]*Object, 0, len(typed))
		for _, item := range typed {
			obj, ok := item.(*Object)
			if !ok {
				return nil, fmt.Errorf("line %d: merge key needs mappings", line)
			}
			out = append(out, obj)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("line %d: merge key needs a mapping", line)
	}
}

func scalarValue(n *yamlv3.Node) Value {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
	case "!!int":
		if _, err := strconv.ParseInt(n.Value, 10, 64); err == nil {
			return Number(n.Value)
		}
		var i int64
		if err := n.Decode(&i); err == nil {
			return Number(strconv.FormatInt(i, 10))
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return Number(strconv.FormatUint(u, 10))
		}
	case "!!float":
		if isJSONNumber(n.Value) {
			return Number(n.Value)
		}
		var f float64
		if err := n.Decode(&f); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return Number(strconv.FormatFloat(f, 'g', -1, 64))
		}
	}

	return n.Value
}

// isJSONNumber 报告 s 是否为合法的 JSON 数字字面量。
func isJSONNumber(s string) bool {
	if s == "" || (s[0] != '-' && (s[0] < '0' || s[0] > '9')) {
		return false
	}

	return json.Valid([]byte(s))
}

func (n Number) native() any {
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(string(n), 64); err == nil {
		return f
	}

	return string(n)
}
