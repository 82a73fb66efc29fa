package tokens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sahilm/fuzzy"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/schema"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/source"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/resolve"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/token"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/tree"
)

// row 报告中的一行。
type row struct {
	Placeholder string
	Kind        string // scalar | list
	Schema      string // required | optional | unknown
	Env         string // set | unset
	Hint        string
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	warningStyle = cellStyle.Foreground(lipgloss.Color("3"))
)

// buildReport 为模板中的每个占位符生成一行，并返回 schema 中模板未引用的令牌。
func buildReport(ctx context.Context, tmpl tree.Value, sch schema.Schema, src source.Source) ([]row, []string, error) {
	names := sch.Names()
	used := make(map[string]bool)

	var rows []row
	for _, tok := range resolve.Scan(tmpl) {
		r := row{Placeholder: tok.String(), Kind: "scalar", Schema: "unknown"}

		def, known := sch.Lookup(tok.ID)
		if !known && tok.Kind == token.Indexed {
			def, known = sch.Lookup(tok.Base)
		}
		switch {
		case known:
			used[def.Name] = true
			r.Schema = "optional"
			if def.Required {
				r.Schema = "required"
			}
			r.Hint = def.EnvName()
			if def.List {
				r.Hint += "__<i>__<Field>"
			}
		case tok.Kind == token.Indexed:
			def = schema.Token{Name: tok.Base, List: true}
			r.Hint = suggest(tok.Base, names)
		default:
			def = schema.Token{Name: tok.ID}
			r.Hint = suggest(tok.ID, names)
		}
		if def.List {
			r.Kind = "list"
		}

		_, ok, err := src.Lookup(ctx, def)
		if err != nil {
			return nil, nil, fmt.Errorf("lookup %s: %w", def.Name, err)
		}
		r.Env = "unset"
		if ok {
			r.Env = "set"
		}
		rows = append(rows, r)
	}

	var unused []string
	for _, name := range names {
		if !used[name] {
			unused = append(unused, name)
		}
	}

	return rows, unused, nil
}

// suggest 返回与未知令牌最接近的 schema 令牌名。
func suggest(name string, names []string) string {
	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return ""
	}

	return "did you mean " + matches[0].Str + "?"
}

// renderTable 使用 lipgloss/table 输出报告。
func renderTable(rows []row) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("PLACEHOLDER", "KIND", "SCHEMA", "ENV", "HINT").
		StyleFunc(func(r, _ int) lipgloss.Style {
			switch {
			case r == table.HeaderRow:
				return headerStyle
			case r >= 0 && r < len(rows) && rows[r].Schema == "unknown":
				return warningStyle
			default:
				return cellStyle
			}
		})
	for _, r := range rows {
		t.Row(r.Placeholder, r.Kind, r.Schema, r.Env, r.Hint)
	}

	return t.Render()
}
