package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "checklist.dev/pkg/checklist/internal/model"
)

func definitionsOf(t *testing.T, src, token string) []m.Definition {
	t.Helper()

	defs, err := NewLocalPythonFileAdapter().Definitions(context.Background(), "mod.py", []byte(src), token)
	require.NoError(t, err)

	return defs
}

func qualifiedNames(defs []m.Definition) []string {
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.QualifiedName)
	}

	return names
}

func TestLocalPythonFileAdapter_Definitions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "module functions",
			src:  "def a():\n    pass\n\n\ndef b(x, y=1):\n    return x\n",
			want: []string{"a", "b"},
		},
		{
			name: "methods and nested classes",
			src: "class Outer:\n" +
				"    def run(self):\n        pass\n\n" +
				"    class Inner:\n        def deep(self):\n            pass\n",
			want: []string{"Outer.run", "Outer.Inner.deep"},
		},
		{
			name: "decorated and async",
			src: "import functools\n\n\n" +
				"@functools.lru_cache\ndef cached():\n    pass\n\n\n" +
				"async def fetch():\n    pass\n\n\n" +
				"class A:\n    @staticmethod\n    async def make():\n        pass\n",
			want: []string{"cached", "fetch", "A.make"},
		},
		{
			name: "functions inside functions are local",
			src: "def outer():\n" +
				"    def inner():\n        pass\n\n" +
				"    class Local:\n        def method(self):\n            pass\n\n" +
				"    return inner\n",
			want: []string{"outer", "outer.<locals>.inner", "outer.<locals>.Local.method"},
		},
		{
			name: "conditional definitions",
			src:  "import sys\n\nif sys.version_info >= (3, 8):\n    def compat():\n        pass\nelse:\n    def compat():\n        pass\n",
			want: []string{"compat", "compat"},
		},
		{
			name: "no functions",
			src:  "X = 1\n",
			want: []string{},
		},
		{
			name: "empty file",
			src:  "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, qualifiedNames(definitionsOf(t, tt.src, "nochecklist")))
		})
	}
}

func TestLocalPythonFileAdapter_Definitions_AsyncAndLines(t *testing.T) {
	defs := definitionsOf(t, "def a():\n    pass\n\n\nasync def b():\n    pass\n", "")

	require.Len(t, defs, 2)
	assert.False(t, defs[0].Async)
	assert.Equal(t, 1, defs[0].Line)
	assert.True(t, defs[1].Async)
	assert.Equal(t, 5, defs[1].Line)
}

func TestLocalPythonFileAdapter_Definitions_NoCoverToken(t *testing.T) {
	src := "def marked():  # nochecklist\n    pass\n\n\n" +
		"def annotated(x: int) -> int:  # nochecklist: generated\n    return x\n\n\n" +
		"def one_liner(): pass  # nochecklist\n\n\n" +
		"def body_comment():\n    # nochecklist\n    pass\n\n\n" +
		"def other():  # unrelated\n    pass\n\n\n" +
		"# nochecklist\ndef above():\n    pass\n\n\n" +
		"def multi(\n    a,\n    b,\n):  # nochecklist\n    pass\n"

	defs := definitionsOf(t, src, "nochecklist")

	ignored := map[string]bool{}
	for _, def := range defs {
		ignored[def.QualifiedName] = def.Ignored
	}

	assert.Equal(t, map[string]bool{
		"marked":       true,
		"annotated":    true,
		"one_liner":    true,
		"body_comment": false,
		"other":        false,
		"above":        false,
		"multi":        true,
	}, ignored)

	for _, def := range definitionsOf(t, src, "") {
		assert.False(t, def.Ignored, def.QualifiedName)
	}
}

func TestLocalPythonFileAdapter_Definitions_SyntaxError(t *testing.T) {
	_, err := NewLocalPythonFileAdapter().Definitions(context.Background(), "bad.py", []byte("def ok():\n    pass\n\ndef broken(:\n    pass\n"), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, m.Path("bad.py"), parseErr.Path)
	assert.Contains(t, parseErr.Error(), "bad.py:")
}

func TestLocalPythonFileAdapter_Definitions_PythonTwoPrint(t *testing.T) {
	defs := definitionsOf(t, "def f():\n    print \"hi\"\n", "")

	assert.Equal(t, []string{"f"}, qualifiedNames(defs))
}
