package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentflare-ai/go-apirst/internal/apidoc"
)

func loadFixture(t *testing.T) *Manifest {
	t.Helper()
	m, err := Load("testdata/uqbar.yaml")
	require.NoError(t, err)
	return m
}

func TestResolve(t *testing.T) {
	m := loadFixture(t)

	client, err := m.Resolve("uqbar.io")
	require.NoError(t, err)
	assert.Equal(t, apidoc.KindModule, client.Kind())
	assert.True(t, client.IsPackage())
	assert.Contains(t, client.MemberNames(), "walk")

	timer, ok := client.Member("Timer")
	require.True(t, ok)
	assert.Equal(t, apidoc.KindClass, timer.Kind())
	assert.Equal(t, "uqbar.io.Timer", timer.DeclaringPath())

	ns, err := m.Resolve("uqbar._private")
	require.NoError(t, err)
	assert.True(t, ns.IsPackage())
	assert.Empty(t, ns.MemberNames())

	_, err = m.Resolve("uqbar.missing")
	assert.ErrorIs(t, err, apidoc.ErrUnresolved)
}

func TestTreeRendersPageAndSummary(t *testing.T) {
	m := loadFixture(t)
	nodes, err := m.Tree(apidoc.Options{}, false)
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	uqbar := nodes[0]
	assert.Equal(t, []string{"containers", "io/index", "strings"}, uqbar.TableOfContents())

	io := uqbar.Children()[1]
	assert.Equal(t, strings.Join([]string{
		".. _uqbar--io:",
		"",
		"io",
		"==",
		"",
		".. automodule:: uqbar.io",
		"",
		".. currentmodule:: uqbar.io",
		"",
		".. toctree::",
		"",
		"   Timer",
		"",
		".. autofunction:: find_common_prefix",
		"",
		".. autofunction:: relative_to",
		"",
		".. autofunction:: walk",
		"",
		".. autofunction:: write",
	}, "\n"), apidoc.RenderPage(io))

	root, err := apidoc.NewRoot("API", nodes...)
	require.NoError(t, err)
	summary := apidoc.RenderSummary(root)
	assert.Contains(t, summary, strings.Join([]string{
		"      ~uqbar.strings.delimit_words",
		"      ~uqbar.strings.normalize",
		"      ~uqbar.strings.to_dash_case",
		"      ~uqbar.strings.to_snake_case",
	}, "\n"))
	assert.NotContains(t, summary, "uqbar--io--Timer")
	assert.NotContains(t, summary, "_private")
}

func TestTreeWithPrivateModules(t *testing.T) {
	m := loadFixture(t)
	nodes, err := m.Tree(apidoc.Options{}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"_private/index", "containers", "io/index", "strings"}, nodes[0].TableOfContents())
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"unknown field":  "modules:\n  - path: a\n    colour: red\n",
		"missing path":   "modules:\n  - package: true\n",
		"duplicate":      "modules:\n  - path: a\n  - path: a\n",
		"bad kind":       "modules:\n  - path: a\n    members: [{name: x, kind: widget}]\n",
		"dup member":     "modules:\n  - path: a\n    members: [{name: x, kind: class}, {name: x, kind: function}]\n",
		"malformed path": "modules:\n  - path: a..b\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestAliasedMembersAreDocumentedOnce(t *testing.T) {
	m := loadFixture(t)
	nodes, err := m.Tree(apidoc.Options{}, false)
	require.NoError(t, err)

	var containers *apidoc.Node
	for _, child := range nodes[0].Children() {
		if child.PackagePath() == "uqbar.containers" {
			containers = child
		}
	}
	require.NotNil(t, containers)
	members := containers.Members()
	require.Len(t, members, 1)
	assert.Equal(t, "uqbar.containers.DependencyGraph", members[0].PackagePath())
}
