package querycache

import "strings"

const (
	keyNamespace = "q"
	partSep      = "|"
	scopeMarker  = "@"
)

// Key identifies one cached query: a resource path such as
// ["leaves", "list", "status=pending"] plus the session scope it belongs to.
type Key struct {
	Parts []string
	Scope string
}

// Prefix selects every key whose parts start with the given parts, across
// all scopes. Mutations declare their invalidation fan-out as prefixes.
type Prefix []string

func NewKey(parts ...string) Key {
	return Key{Parts: parts}
}

func (k Key) Scoped(scope string) Key {
	return Key{Parts: k.Parts, Scope: scope}
}

func (k Key) String() string {
	var b strings.Builder
	b.WriteString(keyNamespace)
	for _, p := range k.Parts {
		b.WriteString(partSep)
		b.WriteString(escapePart(p))
	}
	b.WriteString(partSep)
	b.WriteString(scopeMarker)
	b.WriteString(escapePart(k.Scope))
	return b.String()
}

func (k Key) HasPrefix(p Prefix) bool {
	if len(p) > len(k.Parts) {
		return false
	}
	for i := range p {
		if k.Parts[i] != p[i] {
			return false
		}
	}
	return true
}

// String is the literal string prefix shared by every matching encoded key.
func (p Prefix) String() string {
	var b strings.Builder
	b.WriteString(keyNamespace)
	for _, part := range p {
		b.WriteString(partSep)
		b.WriteString(escapePart(part))
	}
	b.WriteString(partSep)
	return b.String()
}

// Pattern is the Redis SCAN MATCH form of the prefix.
func (p Prefix) Pattern() string {
	return escapeGlob(p.String()) + "*"
}

func scopeSuffix(scope string) string {
	return partSep + scopeMarker + escapePart(scope)
}

func scopePattern(scope string) string {
	return keyNamespace + partSep + "*" + escapeGlob(scopeSuffix(scope))
}

func escapePart(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, partSep, "%7C")
	return s
}

func escapeGlob(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)
	return r.Replace(s)
}
