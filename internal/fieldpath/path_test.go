package fieldpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath_StringAndKey(t *testing.T) {
	testCases := []struct {
		name        string
		path        Path
		expectedStr string
		expectedKey string
	}{
		{
			name:        "root",
			path:        Root,
			expectedStr: "",
			expectedKey: ".",
		},
		{
			name:        "simple path",
			path:        Path{Field("a"), Field("b")},
			expectedStr: "a.b",
			expectedKey: "a.b.",
		},
		{
			name:        "path with indices",
			path:        Path{Field("building"), Element("units", 0), Element("leases", 15)},
			expectedStr: "building.units[0].leases[15]",
			expectedKey: "building.units[0].leases[15].",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStr, tc.path.String())
			assert.Equal(t, tc.expectedKey, tc.path.Key())
		})
	}
}

func TestPath_ChildDoesNotAlias(t *testing.T) {
	base := make(Path, 0, 4)
	base = base.Child(Field("a"))

	left := base.Child(Field("left"))
	right := base.Child(Field("right"))

	assert.Equal(t, "a.left", left.String())
	assert.Equal(t, "a.right", right.String())
	assert.Equal(t, "a", base.String())
}

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expectErr bool
		expected  Path
	}{
		{name: "empty is root", raw: "", expected: Root},
		{name: "simple path", raw: "a.b.c", expected: Path{Field("a"), Field("b"), Field("c")}},
		{name: "with index", raw: "units[0].rent", expected: Path{Element("units", 0), Field("rent")}},
		{name: "error - empty segment", raw: "a..b", expectErr: true},
		{name: "error - invalid index", raw: "a.b[x]", expectErr: true},
		{name: "error - leading digit", raw: "1a", expectErr: true},
		{name: "error - just hyphen", raw: "-", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Parse(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(p), "got %q", p.String())
		})
	}
}

func TestParseKey_RoundTrip(t *testing.T) {
	for _, key := range []string{".", "a.", "a.b.", "units[3].rent."} {
		t.Run(key, func(t *testing.T) {
			p, err := ParseKey(key)
			require.NoError(t, err)
			assert.Equal(t, key, p.Key())
		})
	}

	_, err := ParseKey("a.b")
	assert.Error(t, err)
}

func TestPath_HasPrefix(t *testing.T) {
	p := MustParse("total_expenses.operating_expenses")

	assert.True(t, p.HasPrefix(Root))
	assert.True(t, p.HasPrefix(MustParse("total_expenses")))
	assert.True(t, p.HasPrefix(p))
	assert.False(t, p.HasPrefix(MustParse("effective_gross_income")))
	assert.False(t, MustParse("total_expenses").HasPrefix(p))
}
