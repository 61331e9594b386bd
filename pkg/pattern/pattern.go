// Package pattern implements gitignore-flavored glob rule sets for
// matching relative file paths.
//
// A RuleSet is compiled once from an ordered list of rule strings and can
// then be matched against any number of paths. The supported syntax follows
// the common .gitignore subset:
//
//   - Plain names: "core" matches a file or directory anywhere in the tree
//   - Leading /: "/debug.log" anchors the rule to the tree root
//   - Trailing /: "build/" matches directories only (and their contents)
//   - Single star: "*.pyc" matches any .pyc file
//   - Question mark: "?" matches a single non-separator character
//   - Double star: "**/logs" matches at any depth
//   - Negation: "!important.log" re-includes a previously matched path
//   - Lines starting with "#" are comments; blank rules are skipped
//
// A rule that matches a directory also matches every path beneath it.
// Later rules override earlier ones, so negations apply to the rules that
// precede them. Paths are normalized to forward slashes before matching,
// so Windows-style input works as expected.
package pattern

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/epfml/codepack/pkg/errors"
)

// rule is a single compiled gitignore-style rule.
type rule struct {
	glob    string // doublestar pattern, slash separated
	negate  bool   // leading "!" re-includes matches
	dirOnly bool   // trailing "/" restricts to directories
}

// RuleSet is an ordered, compiled set of rules. It is immutable after
// Compile and safe for concurrent use.
type RuleSet struct {
	rules []rule
}

// Compile parses the given rule strings into a RuleSet.
// Blank rules and "#" comments are dropped. An invalid glob yields an
// INVALID_INPUT error naming the offending rule.
func Compile(rules []string) (*RuleSet, error) {
	rs := &RuleSet{}
	for _, raw := range rules {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		r := rule{}
		if strings.HasPrefix(trimmed, "!") {
			r.negate = true
			trimmed = trimmed[1:]
		}
		if strings.HasSuffix(trimmed, "/") {
			r.dirOnly = true
			trimmed = strings.TrimSuffix(trimmed, "/")
		}

		anchored := strings.HasPrefix(trimmed, "/")
		trimmed = strings.TrimPrefix(trimmed, "/")
		if trimmed == "" {
			continue
		}

		// A rule without a slash matches at any depth; a rule containing
		// a slash is anchored to the root, per gitignore.
		r.glob = trimmed
		if !anchored && !strings.Contains(trimmed, "/") {
			r.glob = "**/" + trimmed
		}

		if !doublestar.ValidatePattern(r.glob) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid pattern %q", raw)
		}
		rs.rules = append(rs.rules, r)
	}
	return rs, nil
}

// MustCompile is like Compile but panics on invalid rules.
// Intended for compile-time constant rule lists.
func MustCompile(rules []string) *RuleSet {
	rs, err := Compile(rules)
	if err != nil {
		panic(err)
	}
	return rs
}

// Match reports whether relPath matches the rule set. relPath must be
// relative to the tree root; isDir tells the matcher whether the path is a
// directory, which trailing-slash rules require. The last matching rule
// decides the result, so negations win over earlier matches.
func (rs *RuleSet) Match(relPath string, isDir bool) bool {
	normalized := normalize(relPath)
	if normalized == "" || normalized == "." {
		return false
	}

	matched := false
	for _, r := range rs.rules {
		if r.matches(normalized, isDir) {
			matched = !r.negate
		}
	}
	return matched
}

// Empty reports whether the set contains no rules.
func (rs *RuleSet) Empty() bool {
	return len(rs.rules) == 0
}

// matches reports whether a single rule applies to the path.
func (r rule) matches(path string, isDir bool) bool {
	// Direct match on the path itself. Directory-only rules require the
	// path to actually be a directory.
	if ok, err := doublestar.Match(r.glob, path); err == nil && ok {
		return !r.dirOnly || isDir
	}
	// A rule that matches an ancestor directory matches everything
	// beneath it, whatever the rule's directory restriction.
	if ok, err := doublestar.Match(r.glob+"/**", path); err == nil && ok {
		return true
	}
	return false
}

// normalize converts path separators and strips leading "./" so that
// callers can pass filepath-style relative paths.
func normalize(path string) string {
	p := filepath.ToSlash(path)
	p = strings.TrimPrefix(p, "./")
	return strings.TrimSuffix(p, "/")
}
