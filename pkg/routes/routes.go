// pkg/routes/routes.go
package routes

import (
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Class is the access-control tier of a request path.
type Class int

const (
	Public Class = iota
	Auth
	Protected
	Admin // admin implies protected
)

func (c Class) String() string {
	switch c {
	case Auth:
		return "auth"
	case Protected:
		return "protected"
	case Admin:
		return "admin"
	default:
		return "public"
	}
}

// Classifier categorizes paths by longest-prefix match against static
// prefix tables. Unmatched paths are Public. No I/O after construction.
type Classifier struct {
	prefixes []prefixRule
	signOut  string
}

type prefixRule struct {
	prefix string
	class  Class
}

// Table holds the configurable prefix lists, also the YAML file schema.
type Table struct {
	Auth      []string `yaml:"auth"`
	Protected []string `yaml:"protected"`
	Admin     []string `yaml:"admin"`
	SignOut   string   `yaml:"sign_out"`
}

// DefaultTable is the platform's built-in route table.
func DefaultTable() Table {
	return Table{
		Auth:      []string{"/auth"},
		Protected: []string{"/app", "/settings", "/account"},
		Admin:     []string{"/admin"},
		SignOut:   "/auth/signout",
	}
}

// LoadTable reads a YAML route table, falling back to defaults for any
// empty list.
func LoadTable(path string) (Table, error) {
	t := DefaultTable()
	if path == "" {
		return t, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	var f Table
	if err := yaml.Unmarshal(b, &f); err != nil {
		return t, err
	}
	if len(f.Auth) > 0 {
		t.Auth = f.Auth
	}
	if len(f.Protected) > 0 {
		t.Protected = f.Protected
	}
	if len(f.Admin) > 0 {
		t.Admin = f.Admin
	}
	if f.SignOut != "" {
		t.SignOut = f.SignOut
	}
	return t, nil
}

func NewClassifier(t Table) *Classifier {
	c := &Classifier{signOut: t.SignOut}
	add := func(prefixes []string, class Class) {
		for _, p := range prefixes {
			p = strings.TrimRight(p, "/")
			if p == "" {
				continue
			}
			c.prefixes = append(c.prefixes, prefixRule{prefix: p, class: class})
		}
	}
	add(t.Auth, Auth)
	add(t.Protected, Protected)
	add(t.Admin, Admin)
	// Longest prefix first so /admin wins over /a even when both match.
	sort.SliceStable(c.prefixes, func(i, j int) bool {
		return len(c.prefixes[i].prefix) > len(c.prefixes[j].prefix)
	})
	return c
}

// Classify returns the class of a path. Exactly one class per path.
func (c *Classifier) Classify(path string) Class {
	for _, r := range c.prefixes {
		if path == r.prefix || strings.HasPrefix(path, r.prefix+"/") {
			return r.class
		}
	}
	return Public
}

// IsSignOut reports whether path is the sign-out endpoint, which stays
// reachable for authenticated users even though it lives under an auth
// prefix.
func (c *Classifier) IsSignOut(path string) bool {
	return c.signOut != "" && path == c.signOut
}
