package apidoc

import "fmt"

type fakeClient struct {
	name      string
	declaring string
	kind      Kind
	pkg       bool
	members   map[string]Client
}

func (c *fakeClient) Name() string          { return c.name }
func (c *fakeClient) Kind() Kind            { return c.kind }
func (c *fakeClient) DeclaringPath() string { return c.declaring }
func (c *fakeClient) IsPackage() bool       { return c.pkg }

func (c *fakeClient) MemberNames() []string {
	names := make([]string, 0, len(c.members))
	for name := range c.members {
		names = append(names, name)
	}
	return names
}

func (c *fakeClient) Member(name string) (Client, bool) {
	m, ok := c.members[name]
	return m, ok
}

func fakeModule(path string, pkg bool, members ...*fakeClient) *fakeClient {
	c := &fakeClient{name: LastSegment(path), declaring: path, kind: KindModule, pkg: pkg, members: map[string]Client{}}
	for _, m := range members {
		c.members[m.name] = m
	}
	return c
}

func fakeClass(declaring, name string) *fakeClient {
	return &fakeClient{name: name, declaring: declaring, kind: KindClass}
}

func fakeFunc(declaring, name string) *fakeClient {
	return &fakeClient{name: name, declaring: declaring, kind: KindFunction}
}

func fakeValue(declaring, name string) *fakeClient {
	return &fakeClient{name: name, declaring: declaring, kind: KindValue}
}

type fakeResolver map[string]*fakeClient

func (r fakeResolver) Resolve(path string) (Client, error) {
	c, ok := r[path]
	if !ok {
		return nil, fmt.Errorf("no module named %q", path)
	}
	return c, nil
}

func (r fakeResolver) add(clients ...*fakeClient) fakeResolver {
	for _, c := range clients {
		r[c.declaring] = c
	}
	return r
}

// scenarioResolver models pkg (package) > pkg.io (package with alpha, beta)
// > pkg.io.Timer (module hosting class Timer), plus pkg.strings.
func scenarioResolver() fakeResolver {
	io := fakeModule("pkg.io", true,
		fakeFunc("pkg.io", "beta"),
		fakeFunc("pkg.io", "alpha"),
		fakeFunc("pkg.io", "_hidden"),
		fakeClass("pkg.io.Timer", "Timer"),
	)
	return fakeResolver{}.add(
		fakeModule("pkg", true),
		io,
		fakeModule("pkg.io.Timer", false, fakeClass("pkg.io.Timer", "Timer")),
		fakeModule("pkg.strings", false,
			fakeFunc("pkg.strings", "to_snake_case"),
			fakeFunc("pkg.strings", "normalize"),
			fakeClass("pkg.strings", "Delimiter"),
		),
	)
}
