package snapshot_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scandiweb/configdiff/pkg/dataset"
	"github.com/scandiweb/configdiff/pkg/io/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeKeepsScopeOrderAndStringifiesScalars(t *testing.T) {
	t.Parallel()

	document := `version: 1
scopes:
  stores_1:
    design/theme/theme_id: 4
    web/seo/use_rewrites: yes
  default_0:
    general/locale/code: en_US
    dev/debug/template_hints: ~
  websites_2: {}
`

	data, err := snapshot.Decode(strings.NewReader(document))
	require.NoError(t, err)

	scopes := data.Scopes()
	require.Len(t, scopes, 3)
	assert.Equal(t, "stores_1", scopes[0].Scope.Key)
	assert.Equal(t, "default_0", scopes[1].Scope.Key)
	assert.Equal(t, "websites_2", scopes[2].Scope.Key)
	assert.Zero(t, scopes[2].Len())

	value, ok := scopes[0].Get("design/theme/theme_id")
	require.True(t, ok)
	assert.Equal(t, "4", value)

	value, ok = scopes[0].Get("web/seo/use_rewrites")
	require.True(t, ok)
	assert.Equal(t, "yes", value)

	value, ok = scopes[1].Get("dev/debug/template_hints")
	require.True(t, ok)
	assert.Empty(t, value)
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		document string
		message  string
	}{
		{name: "empty", document: "", message: "empty document"},
		{name: "wrong version", document: "version: 3\nscopes: {}\n", message: "unsupported version 3"},
		{name: "missing version", document: "scopes: {}\n", message: "unsupported version 0"},
		{name: "scopes list", document: "version: 1\nscopes: [a, b]\n", message: "scopes must be a mapping"},
		{name: "scope scalar", document: "version: 1\nscopes:\n  default_0: value\n", message: `scope "default_0" must be a mapping`},
		{name: "nested value", document: "version: 1\nscopes:\n  default_0:\n    a: {b: c}\n", message: "must be a scalar"},
		{name: "broken yaml", document: "version: [\n", message: "invalid snapshot"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := snapshot.Decode(strings.NewReader(testCase.document))
			require.ErrorIs(t, err, snapshot.ErrInvalidSnapshot)
			assert.Contains(t, err.Error(), testCase.message)
		})
	}
}

func TestEncodeQuotesAmbiguousValues(t *testing.T) {
	t.Parallel()

	data := dataset.NewBuilder().
		Set("default_0", "web/seo/use_rewrites", "1").
		Set("default_0", "catalog/frontend/flat", "true").
		Build()

	var buf bytes.Buffer

	require.NoError(t, snapshot.Encode(&buf, data))

	output := buf.String()
	assert.True(t, strings.HasPrefix(output, "version: 1\n"))
	assert.Contains(t, output, `web/seo/use_rewrites: "1"`)
	assert.Contains(t, output, `catalog/frontend/flat: "true"`)
}

func TestFileRoundTrip(t *testing.T) {
	t.Parallel()

	original := dataset.NewBuilder().
		Set("websites_1", "web/cookie/cookie_domain", ".shop.test").
		Set("default_0", "design/head/includes", "<link rel=\"stylesheet\"/>\n<script></script>").
		Set("default_0", "general/store_information/name", "").
		Set("default_0", "sales/minimum_order/amount", "10.50").
		AddScope("stores_3").
		Build()

	path := filepath.Join(t.TempDir(), "nested", "snapshot.yaml")

	require.NoError(t, snapshot.WriteFile(path, original))

	decoded, err := snapshot.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestFileErrors(t *testing.T) {
	t.Parallel()

	_, err := snapshot.ReadFile("")
	require.ErrorIs(t, err, snapshot.ErrEmptyPath)

	require.ErrorIs(t, snapshot.WriteFile("", dataset.NewBuilder().Build()), snapshot.ErrEmptyPath)

	_, err = snapshot.ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
