package apidoc

import (
	"fmt"
	"sort"
	"strings"
)

// Classifier decides whether a member belongs to its documentation section
// and builds the leaf for it. Classifiers are consulted in priority order and
// the first one that recognizes a member wins.
type Classifier interface {
	Recognizes(candidate Client, owningPath string) bool
	Construct(path string) Leaf
}

// ClassClassifier recognizes classes declared in the owning module.
type ClassClassifier struct{}

func (ClassClassifier) Recognizes(candidate Client, owningPath string) bool {
	return declaredAs(candidate, owningPath, KindClass)
}

func (ClassClassifier) Construct(path string) Leaf { return NewClassDocumenter(path) }

// FunctionClassifier recognizes functions declared in the owning module.
type FunctionClassifier struct{}

func (FunctionClassifier) Recognizes(candidate Client, owningPath string) bool {
	return declaredAs(candidate, owningPath, KindFunction)
}

func (FunctionClassifier) Construct(path string) Leaf { return NewFunctionDocumenter(path) }

// ValueClassifier recognizes module-level constants and variables.
type ValueClassifier struct{}

func (ValueClassifier) Recognizes(candidate Client, owningPath string) bool {
	return declaredAs(candidate, owningPath, KindValue)
}

func (ValueClassifier) Construct(path string) Leaf { return NewValueDocumenter(path) }

func declaredAs(candidate Client, owningPath string, kind Kind) bool {
	if candidate == nil || candidate.Kind() != kind {
		return false
	}
	return candidate.DeclaringPath() == owningPath
}

// DefaultClassifiers returns the class and function classifiers, in that order.
func DefaultClassifiers() []Classifier {
	return []Classifier{ClassClassifier{}, FunctionClassifier{}}
}

var classifierNames = map[string]func() Classifier{
	"class":    func() Classifier { return ClassClassifier{} },
	"function": func() Classifier { return FunctionClassifier{} },
	"value":    func() Classifier { return ValueClassifier{} },
}

// ClassifierNames lists the names accepted by ClassifierByName.
func ClassifierNames() []string {
	names := make([]string, 0, len(classifierNames))
	for name := range classifierNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ClassifierByName maps a configuration name to a classifier.
func ClassifierByName(name string) (Classifier, error) {
	ctor, ok := classifierNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown member classifier %q (want one of %s)", name, strings.Join(ClassifierNames(), ", "))
	}
	return ctor(), nil
}

// ClassifiersByName resolves an ordered list of classifier names.
func ClassifiersByName(names []string) ([]Classifier, error) {
	result := make([]Classifier, 0, len(names))
	for _, name := range names {
		c, err := ClassifierByName(name)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, nil
}

// classify runs the priority list over the members of client.
func classify(client Client, owningPath string, opts Options) ([]Leaf, error) {
	names := append([]string(nil), client.MemberNames()...)
	sort.Strings(names)
	seen := make(map[string]struct{}, len(names))
	var leaves []Leaf
	for _, name := range names {
		if opts.IsPrivate(name) && !opts.DocumentPrivateMembers {
			continue
		}
		member, ok := client.Member(name)
		if !ok || member == nil {
			continue
		}
		for _, c := range opts.Classifiers {
			if !c.Recognizes(member, owningPath) {
				continue
			}
			path := JoinPath(member.DeclaringPath(), member.Name())
			leaf, err := construct(c, path)
			if err != nil {
				return nil, err
			}
			if _, dup := seen[path]; !dup {
				seen[path] = struct{}{}
				leaves = append(leaves, leaf)
			}
			break
		}
	}
	return leaves, nil
}

func construct(c Classifier, path string) (leaf Leaf, err error) {
	fail := func(reason string) (Leaf, error) {
		return nil, &ContractError{Classifier: fmt.Sprintf("%T", c), Path: path, Reason: reason}
	}
	// A typed nil leaf passes the nil check and panics on first use.
	defer func() {
		if r := recover(); r != nil {
			leaf, err = fail(fmt.Sprintf("leaf panicked: %v", r))
		}
	}()
	leaf = c.Construct(path)
	switch {
	case leaf == nil:
		return fail("returned no leaf")
	case leaf.PackagePath() != path:
		return fail(fmt.Sprintf("leaf path %q does not match", leaf.PackagePath()))
	case leaf.Section() == "":
		return fail("leaf has no documentation section")
	}
	return leaf, nil
}
