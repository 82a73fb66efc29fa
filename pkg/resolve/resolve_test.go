package resolve_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/resolve"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/token"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/tree"
)

func services() resolve.Replacements {
	return resolve.Replacements{
		"Services": resolve.Sequence(
			tree.NewObject("Endpoint", "e1", "Key", "k1"),
			tree.NewObject("Endpoint", "e2", "Key", "k2"),
		),
		"Foo": resolve.Scalar("bar"),
	}
}

func expandedServices() []any {
	return []any{
		tree.NewObject("Endpoint", "e1", "Key", "k1"),
		tree.NewObject("Endpoint", "e2", "Key", "k2"),
	}
}

func assertTree(t *testing.T, want, got tree.Value) {
	t.Helper()

	var wantBuf, gotBuf bytes.Buffer
	require.NoError(t, tree.EncodeJSON(&wantBuf, want))
	require.NoError(t, tree.EncodeJSON(&gotBuf, got))
	assert.Equal(t, wantBuf.String(), gotBuf.String())
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		tmpl tree.Value
		want tree.Value
	}{
		{
			name: "scalar substitution",
			tmpl: tree.NewObject("a", "__Foo__"),
			want: tree.NewObject("a", "bar"),
		},
		{
			name: "missing token passes through",
			tmpl: tree.NewObject("a", "__Missing__"),
			want: tree.NewObject("a", "__Missing__"),
		},
		{
			name: "singleton array expansion",
			tmpl: tree.NewObject("list", []any{"__Services_0__"}),
			want: tree.NewObject("list", expandedServices()),
		},
		{
			name: "indexed scalar expansion",
			tmpl: tree.NewObject("a", "__Services_0__"),
			want: tree.NewObject("a", expandedServices()),
		},
		{
			name: "two element array is resolved element-wise",
			tmpl: tree.NewObject("list", []any{"__Services_0__", "x"}),
			want: tree.NewObject("list", []any{expandedServices(), "x"}),
		},
		{
			name: "singleton with non-zero index is not expanded as the array",
			tmpl: tree.NewObject("list", []any{"__Services_1__"}),
			want: tree.NewObject("list", []any{expandedServices()}),
		},
		{
			name: "singleton with unbound base stays as is",
			tmpl: tree.NewObject("list", []any{"__Other_0__"}),
			want: tree.NewObject("list", []any{"__Other_0__"}),
		},
		{
			name: "object inside array is resolved structurally",
			tmpl: tree.NewObject("list", []any{tree.NewObject("Endpoint", "__Foo__")}),
			want: tree.NewObject("list", []any{tree.NewObject("Endpoint", "bar")}),
		},
		{
			name: "indexed token falls back to scalar binding of full id",
			tmpl: tree.NewObject("a", "__Port_0__"),
			want: tree.NewObject("a", "8080"),
		},
		{
			name: "plain token bound to a sequence passes through",
			tmpl: tree.NewObject("a", "__Services__"),
			want: tree.NewObject("a", "__Services__"),
		},
		{
			name: "keys are never substituted",
			tmpl: tree.NewObject("__Foo__", "__Foo__"),
			want: tree.NewObject("__Foo__", "bar"),
		},
		{
			name: "embedded placeholder is plain text",
			tmpl: tree.NewObject("url", "https://__Foo__/api"),
			want: tree.NewObject("url", "https://__Foo__/api"),
		},
		{
			name: "other scalars unchanged",
			tmpl: tree.NewObject("n", tree.Number("3"), "b", true, "z", nil),
			want: tree.NewObject("n", tree.Number("3"), "b", true, "z", nil),
		},
		{
			name: "top level scalar",
			tmpl: "__Foo__",
			want: "bar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := services()
			r["Port_0"] = resolve.Scalar("8080")

			assertTree(t, tt.want, resolve.Resolve(tt.tmpl, r))
		})
	}
}

func TestResolve_ExpansionLengthAndOrder(t *testing.T) {
	got := resolve.Resolve(tree.NewObject("list", []any{"__Services_0__"}), services())

	list, _ := got.(*tree.Object).Get("list")
	items, ok := list.([]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	first, _ := items[0].(*tree.Object).Get("Endpoint")
	second, _ := items[1].(*tree.Object).Get("Endpoint")
	assert.Equal(t, "e1", first)
	assert.Equal(t, "e2", second)
}

func TestResolve_SequenceItemsAreNotReResolved(t *testing.T) {
	r := resolve.Replacements{
		"Services": resolve.Sequence(tree.NewObject("Endpoint", "__Foo__")),
		"Foo":      resolve.Scalar("bar"),
	}

	got := resolve.Resolve(tree.NewObject("list", []any{"__Services_0__"}), r)
	assertTree(t, tree.NewObject("list", []any{tree.NewObject("Endpoint", "__Foo__")}), got)
}

func TestResolve_Idempotent(t *testing.T) {
	tmpl := tree.NewObject(
		"Settings", tree.NewObject("Db", "__Foo__", "Retries", "3"),
		"Services", []any{"__Services_0__"},
		"Missing", "__Missing__",
	)

	first := resolve.Resolve(tmpl, services())
	second := resolve.Resolve(tmpl, services())
	assert.True(t, tree.Equal(first, second))

	// 已解析且仅剩未绑定占位符的树再次解析结果不变
	again := resolve.Resolve(first, services())
	assert.True(t, tree.Equal(first, again))
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	tmpl := tree.NewObject(
		"a", "__Foo__",
		"list", []any{"__Services_0__"},
		"nested", []any{tree.NewObject("x", "__Foo__")},
	)
	before := tree.Clone(tmpl)

	r := services()
	out := resolve.Resolve(tmpl, r)
	assert.True(t, tree.Equal(before, tmpl))

	// 修改输出不影响替换源
	list, _ := out.(*tree.Object).Get("list")
	list.([]any)[0].(*tree.Object).Set("Endpoint", "changed")
	again := resolve.Resolve(tmpl, r)
	againList, _ := again.(*tree.Object).Get("list")
	endpoint, _ := againList.([]any)[0].(*tree.Object).Get("Endpoint")
	assert.Equal(t, "e1", endpoint)
}

func TestScanAndUnresolved(t *testing.T) {
	tmpl := tree.NewObject(
		"a", "__Foo__",
		"b", []any{"__Services_0__"},
		"c", tree.NewObject("d", "__Foo__", "e", "__Missing__", "f", "plain"),
	)

	toks := resolve.Scan(tmpl)
	require.Len(t, toks, 3)
	assert.Equal(t, token.Token{Kind: token.Plain, ID: "Foo"}, toks[0])
	assert.Equal(t, token.Token{Kind: token.Indexed, ID: "Services_0", Base: "Services"}, toks[1])
	assert.Equal(t, "Missing", toks[2].ID)

	out := resolve.Resolve(tmpl, services())
	assert.Equal(t, []string{"Missing"}, resolve.Unresolved(out))
}

func TestBinding(t *testing.T) {
	s := resolve.Scalar("v")
	assert.False(t, s.IsSequence())
	assert.Equal(t, "v", s.Value())
	assert.Zero(t, s.Len())

	seq := resolve.Sequence(tree.NewObject("k", "v"))
	assert.True(t, seq.IsSequence())
	assert.Equal(t, 1, seq.Len())
	assert.Nil(t, seq.Value())
}
