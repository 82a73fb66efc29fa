package schema

import (
	"errors"
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/templexp"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/tree"
)

// Load 读取 schema 文件（YAML / JSON），path 为空时返回 [Default]。
//
// 解析前先对文件内容做 ${VAR} 展开（见 templexp）。
// 文件中未给出的部分（tokens / preserve / readiness）由 [Default] 补齐。
func Load(path string) (Schema, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from CLI/config
	if err != nil {
		return Schema{}, fmt.Errorf("load schema: %w", err)
	}
	text, err := templexp.ExpandTemplate(string(data))
	if err != nil {
		return Schema{}, fmt.Errorf("expand schema %s: %w", path, err)
	}
	doc, err := tree.Parse([]byte(text), tree.FormatOf(path))
	if err != nil {
		return Schema{}, fmt.Errorf("parse schema %s: %w", path, err)
	}

	var s Schema
	if doc != nil {
		raw, ok := tree.Plain(doc).(map[string]any)
		if !ok {
			return Schema{}, fmt.Errorf("load schema %s: %w", path, errors.New("schema root must be object"))
		}
		if err := decode(raw, &s); err != nil {
			return Schema{}, fmt.Errorf("decode schema %s: %w", path, err)
		}
	}

	if err := mergo.Merge(&s, Default()); err != nil {
		return Schema{}, fmt.Errorf("merge schema defaults: %w", err)
	}

	return s, s.Validate()
}

// Validate 检查令牌名非空且不重复。
func (s Schema) Validate() error {
	seen := make(map[string]bool, len(s.Tokens))
	for i, t := range s.Tokens {
		if t.Name == "" {
			return fmt.Errorf("schema: token #%d has empty name", i)
		}
		if seen[t.Name] {
			return fmt.Errorf("schema: duplicate token %q", t.Name)
		}
		seen[t.Name] = true
	}
	for i, rule := range s.Preserve {
		if rule.Section == "" {
			return fmt.Errorf("schema: preserve rule #%d has empty section", i)
		}
	}

	return nil
}

func decode(data map[string]any, out *Schema) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "json",
	})
	if err != nil {
		return err
	}

	return decoder.Decode(data)
}
