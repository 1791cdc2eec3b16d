package apidoc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leafPaths(leaves []Leaf) []string {
	paths := make([]string, 0, len(leaves))
	for _, l := range leaves {
		paths = append(paths, l.PackagePath())
	}
	return paths
}

func TestNewNodeClassifiesMembersInNameOrder(t *testing.T) {
	node, err := NewNode(scenarioResolver(), "pkg.strings", Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"pkg.strings.Delimiter", "pkg.strings.normalize", "pkg.strings.to_snake_case"}, leafPaths(node.Members()))
	assert.Equal(t, "strings", node.PackageName())
	assert.False(t, node.IsPackage())
	assert.False(t, node.DocumentPrivateMembers())
}

func TestNewNodeSkipsPrivateMembers(t *testing.T) {
	r := scenarioResolver()

	node, err := NewNode(r, "pkg.io", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg.io.alpha", "pkg.io.beta"}, leafPaths(node.Members()))

	node, err = NewNode(r, "pkg.io", Options{DocumentPrivateMembers: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg.io._hidden", "pkg.io.alpha", "pkg.io.beta"}, leafPaths(node.Members()))
}

func TestNewNodeCustomPrivacyRule(t *testing.T) {
	r := fakeResolver{}.add(fakeModule("lib", false, fakeFunc("lib", "Open"), fakeFunc("lib", "close")))
	unexported := func(name string) bool { return name != "" && name[0] >= 'a' && name[0] <= 'z' }

	node, err := NewNode(r, "lib", Options{IsPrivate: unexported})
	require.NoError(t, err)
	assert.Equal(t, []string{"lib.Open"}, leafPaths(node.Members()))
}

func TestNewNodeIgnoresReexports(t *testing.T) {
	node, err := NewNode(scenarioResolver(), "pkg.io", Options{})
	require.NoError(t, err)
	for _, leaf := range node.Members() {
		assert.NotEqual(t, "pkg.io.Timer.Timer", leaf.PackagePath())
	}
}

func TestNewNodeUnresolvablePath(t *testing.T) {
	node, err := NewNode(scenarioResolver(), "pkg.missing", Options{})
	require.Error(t, err)
	assert.Nil(t, node)
	assert.True(t, errors.Is(err, ErrUnresolved))

	var rerr *ResolutionError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "pkg.missing", rerr.Path)
}

func TestNewNodeRejectsNonModule(t *testing.T) {
	r := ResolverFunc(func(path string) (Client, error) {
		return fakeFunc("pkg", "alpha"), nil
	})
	_, err := NewNode(r, "pkg.alpha", Options{})
	assert.ErrorIs(t, err, ErrUnresolved)
}

func TestNewNodeRejectsIndirectChildren(t *testing.T) {
	r := scenarioResolver()
	timer, err := NewNode(r, "pkg.io.Timer", Options{})
	require.NoError(t, err)

	_, err = NewNode(r, "pkg", Options{}, timer)
	assert.ErrorIs(t, err, ErrInvalidTree)
}

func TestNewNodeIsDeterministic(t *testing.T) {
	build := func() *Node {
		r := scenarioResolver()
		timer, err := NewNode(r, "pkg.io.Timer", Options{})
		require.NoError(t, err)
		io, err := NewNode(r, "pkg.io", Options{}, timer)
		require.NoError(t, err)
		return io
	}
	a, b := build(), build()
	assert.NotSame(t, a, b)
	assert.Equal(t, leafPaths(a.Members()), leafPaths(b.Members()))
	assert.Equal(t, RenderPage(a), RenderPage(b))
}

func TestNodeAccessorsReturnCopies(t *testing.T) {
	node, err := NewNode(scenarioResolver(), "pkg.strings", Options{})
	require.NoError(t, err)

	members := node.Members()
	members[0] = nil
	assert.NotNil(t, node.Members()[0])

	classifiers := node.Classifiers()
	require.Len(t, classifiers, 2)
	classifiers[0] = nil
	assert.NotNil(t, node.Classifiers()[0])
}

func TestReferenceName(t *testing.T) {
	cases := map[string]string{
		"pkg.sub_mod":         "pkg--sub-mod",
		"uqbar.io":            "uqbar--io",
		"top":                 "top",
		"a_b.c_d.e":           "a-b--c-d--e",
		"pkg._private.module": "pkg---private--module",
	}
	for in, want := range cases {
		assert.Equal(t, want, ReferenceName(in), in)
	}
}

func TestDocumentationPath(t *testing.T) {
	r := scenarioResolver()
	io, err := NewNode(r, "pkg.io", Options{})
	require.NoError(t, err)
	strs, err := NewNode(r, "pkg.strings", Options{})
	require.NoError(t, err)

	assert.Equal(t, "pkg/io/index.rst", io.DocumentationPath())
	assert.Equal(t, "pkg/strings.rst", strs.DocumentationPath())
}

func TestIsNominative(t *testing.T) {
	r := scenarioResolver().add(
		fakeModule("pkg.Timer", true, fakeClass("pkg.Timer", "Timer")),
		fakeModule("pkg.clock", false, fakeClass("pkg.clock", "Timer")),
		fakeModule("pkg.pair", false, fakeClass("pkg.pair", "pair"), fakeFunc("pkg.pair", "make")),
	)
	cases := []struct {
		path string
		want bool
	}{
		{"pkg.io.Timer", true},
		{"pkg.Timer", false},
		{"pkg.clock", false},
		{"pkg.pair", false},
		{"pkg.strings", false},
	}
	for _, tc := range cases {
		node, err := NewNode(r, tc.path, Options{})
		require.NoError(t, err, tc.path)
		assert.Equal(t, tc.want, node.IsNominative(), tc.path)
	}
}

func TestMembersBySection(t *testing.T) {
	r := fakeResolver{}.add(fakeModule("m", false,
		fakeFunc("m", "zeta"),
		fakeClass("m", "Beta"),
		fakeFunc("m", "alpha"),
		fakeClass("m", "Alpha"),
		fakeValue("m", "LIMIT"),
	))
	node, err := NewNode(r, "m", Options{Classifiers: []Classifier{ValueClassifier{}, ClassClassifier{}, FunctionClassifier{}}})
	require.NoError(t, err)

	sections := node.MembersBySection()
	require.Len(t, sections, 3)
	assert.Equal(t, SectionClasses, sections[0].Name)
	assert.Equal(t, []string{"m.Alpha", "m.Beta"}, leafPaths(sections[0].Members))
	assert.Equal(t, SectionFunctions, sections[1].Name)
	assert.Equal(t, []string{"m.alpha", "m.zeta"}, leafPaths(sections[1].Members))
	assert.Equal(t, SectionValues, sections[2].Name)
	assert.Equal(t, []string{"m.LIMIT"}, leafPaths(sections[2].Members))
}

func TestTableOfContents(t *testing.T) {
	r := scenarioResolver()
	timer, err := NewNode(r, "pkg.io.Timer", Options{})
	require.NoError(t, err)
	io, err := NewNode(r, "pkg.io", Options{}, timer)
	require.NoError(t, err)
	strs, err := NewNode(r, "pkg.strings", Options{})
	require.NoError(t, err)
	pkg, err := NewNode(r, "pkg", Options{}, strs, io)
	require.NoError(t, err)

	assert.Equal(t, []string{"strings", "io/index"}, pkg.TableOfContents())
	assert.Equal(t, []string{"Timer"}, io.TableOfContents())
	assert.Empty(t, timer.TableOfContents())
}

func TestRecursiveSectionsSkipsNominativeNodes(t *testing.T) {
	r := scenarioResolver().add(
		fakeModule("pkg.io.Timer.extra", false, fakeFunc("pkg.io.Timer.extra", "tick")),
	)
	extra, err := NewNode(r, "pkg.io.Timer.extra", Options{})
	require.NoError(t, err)
	timer, err := NewNode(r, "pkg.io.Timer", Options{}, extra)
	require.NoError(t, err)
	io, err := NewNode(r, "pkg.io", Options{}, timer)
	require.NoError(t, err)
	pkg, err := NewNode(r, "pkg", Options{}, io)
	require.NoError(t, err)

	var visited []string
	for _, ns := range RecursiveSections(pkg) {
		visited = append(visited, ns.Node.PackagePath())
	}
	assert.Equal(t, []string{"pkg", "pkg.io", "pkg.io.Timer.extra"}, visited)
}

func TestNewRootRejectsDuplicates(t *testing.T) {
	r := scenarioResolver()
	a, err := NewNode(r, "pkg.strings", Options{})
	require.NoError(t, err)
	b, err := NewNode(r, "pkg.strings", Options{})
	require.NoError(t, err)

	_, err = NewRoot("", a, b)
	assert.ErrorIs(t, err, ErrInvalidTree)

	root, err := NewRoot("  ", a)
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, root.Title)
}

func TestNewRootRejectsOverlappingTopLevelNodes(t *testing.T) {
	r := scenarioResolver()
	io, err := NewNode(r, "pkg.io", Options{})
	require.NoError(t, err)
	pkg, err := NewNode(r, "pkg", Options{})
	require.NoError(t, err)

	_, err = NewRoot("", pkg, io)
	require.ErrorIs(t, err, ErrInvalidTree)
	var terr *TreeError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "pkg.io", terr.Path)

	// pkg.iox shares a string prefix only.
	iox, err := NewNode(fakeResolver{}.add(fakeModule("pkg.iox", false)), "pkg.iox", Options{})
	require.NoError(t, err)
	_, err = NewRoot("", io, iox)
	assert.NoError(t, err)
}
