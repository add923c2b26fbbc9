package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "checklist.dev/pkg/checklist/internal/model"
)

func TestResolvePointerMark(t *testing.T) {
	foo := m.FunctionRef("pkg.a", "foo")
	bar := m.FunctionRef("pkg.a", "bar")

	tests := []struct {
		name    string
		mark    m.PointerMark
		want    m.TargetRef
		wantErr bool
	}{
		{name: "positional", mark: m.PointerMark{Args: []m.TargetRef{foo}}, want: foo},
		{name: "keyword", mark: m.PointerMark{Kwargs: map[string]m.TargetRef{TargetKwarg: bar}}, want: bar},
		{
			name: "other keywords are ignored",
			mark: m.PointerMark{Args: []m.TargetRef{foo}, Kwargs: map[string]m.TargetRef{"reason": bar}},
			want: foo,
		},
		{
			name:    "both forms",
			mark:    m.PointerMark{Args: []m.TargetRef{foo}, Kwargs: map[string]m.TargetRef{TargetKwarg: bar}},
			wantErr: true,
		},
		{name: "two positionals", mark: m.PointerMark{Args: []m.TargetRef{foo, bar}}, wantErr: true},
		{name: "no target", mark: m.PointerMark{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePointerMark(tt.mark)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidMark)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTargetPointer(t *testing.T) {
	t.Run("nil mark yields no pointer", func(t *testing.T) {
		pointer, err := ResolveTargetPointer("tests/test_a.py::test_x", nil)
		require.NoError(t, err)
		assert.Nil(t, pointer)
	})

	t.Run("method", func(t *testing.T) {
		mark := &m.PointerMark{Args: []m.TargetRef{m.FunctionRef("pkg.a", "Outer.Inner.run")}}

		pointer, err := ResolveTargetPointer("t1", mark)
		require.NoError(t, err)
		assert.Equal(t, "pkg.a.Outer.Inner.run", pointer.FullName)
		assert.Equal(t, "t1", pointer.TestID)
	})

	t.Run("property resolves like its getter", func(t *testing.T) {
		mark := &m.PointerMark{Kwargs: map[string]m.TargetRef{TargetKwarg: m.PropertyRef("pkg.a", "Box", "size")}}

		pointer, err := ResolveTargetPointer("t2", mark)
		require.NoError(t, err)
		assert.Equal(t, "pkg.a.Box.size", pointer.FullName)
	})

	t.Run("invalid mark names the test", func(t *testing.T) {
		_, err := ResolveTargetPointer("t3", &m.PointerMark{})
		require.ErrorIs(t, err, ErrInvalidMark)
		assert.Contains(t, err.Error(), "t3")
	})
}
