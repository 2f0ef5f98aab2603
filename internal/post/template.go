package post

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"text/template"
	"text/template/parse"

	"github.com/Masterminds/sprig/v3"
)

// DefaultTemplateName is the built-in template used when none is configured.
const DefaultTemplateName = "release"

// siteTemplateFile is the template kept next to the posts, as Jekyll sites do.
const siteTemplateFile = ".template.md"

// Template is a parsed post template whose field references have been
// checked against Fields.
type Template struct {
	Name   string
	Source string // "site", "global", "built-in", or the file path
	tmpl   *template.Template
}

// TemplateInfo describes an available template for listing.
type TemplateInfo struct {
	Name       string `json:"name"`
	Source     string `json:"source"`
	Path       string `json:"path,omitempty"`
	ShadowedBy string `json:"shadowed_by,omitempty"`
}

// Locations are the directories searched for templates.
type Locations struct {
	// PostsDir holds the site-local .template.md.
	PostsDir string
	// GlobalDir holds user templates named <name>.md.
	GlobalDir string
}

// LoadTemplate finds and parses a template.
// ref may be a path to a template file. Otherwise resolution order is
// site-local .template.md, then <GlobalDir>/<ref>.md, then the built-in named ref.
func LoadTemplate(ref string, loc Locations) (*Template, error) {
	if ref == "" {
		ref = DefaultTemplateName
	}

	if isPath(ref) {
		return loadFile(ref, ref)
	}

	if loc.PostsDir != "" {
		path := filepath.Join(loc.PostsDir, siteTemplateFile)
		if fileExists(path) {
			return loadFile(path, "site")
		}
	}

	if loc.GlobalDir != "" {
		path := filepath.Join(loc.GlobalDir, ref+".md")
		if fileExists(path) {
			return loadFile(path, "global")
		}
	}

	content, err := builtinContent(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, ref)
	}
	tmpl, err := Parse(ref, content)
	if err != nil {
		return nil, err
	}
	tmpl.Source = "built-in"
	return tmpl, nil
}

// ListTemplates returns the site template, global templates and built-ins,
// marking built-ins that a global template of the same name shadows.
func ListTemplates(loc Locations) []TemplateInfo {
	var infos []TemplateInfo

	if loc.PostsDir != "" {
		path := filepath.Join(loc.PostsDir, siteTemplateFile)
		if fileExists(path) {
			infos = append(infos, TemplateInfo{Name: siteTemplateFile, Source: "site", Path: path})
		}
	}

	global := map[string]bool{}
	if loc.GlobalDir != "" {
		entries, err := os.ReadDir(loc.GlobalDir)
		if err == nil {
			for _, entry := range entries {
				if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
					continue
				}
				name := strings.TrimSuffix(entry.Name(), ".md")
				global[name] = true
				infos = append(infos, TemplateInfo{
					Name:   name,
					Source: "global",
					Path:   filepath.Join(loc.GlobalDir, entry.Name()),
				})
			}
		}
	}

	for _, name := range builtinNames() {
		info := TemplateInfo{Name: name, Source: "built-in"}
		if global[name] {
			info.ShadowedBy = "global"
		}
		infos = append(infos, info)
	}
	return infos
}

// Parse parses template content and checks that every field it references
// exists on Fields. Unknown fields return ErrMissingTemplateField.
func Parse(name, content string) (*Template, error) {
	tmpl, err := template.New(name).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	if unknown := unknownFields(tmpl); len(unknown) > 0 {
		return nil, fmt.Errorf("%w: template %s references %s",
			ErrMissingTemplateField, name, strings.Join(unknown, ", "))
	}
	return &Template{Name: name, tmpl: tmpl}, nil
}

// Render executes the template with the given fields.
func (t *Template) Render(fields Fields) (string, error) {
	var builder strings.Builder
	if err := t.tmpl.Execute(&builder, fields); err != nil {
		if strings.Contains(err.Error(), "can't evaluate field") {
			return "", fmt.Errorf("%w: template %s: %v", ErrMissingTemplateField, t.Name, err)
		}
		return "", fmt.Errorf("rendering template %s: %w", t.Name, err)
	}
	return builder.String(), nil
}

func loadFile(path, source string) (*Template, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}
	tmpl, err := Parse(filepath.Base(path), string(data))
	if err != nil {
		return nil, err
	}
	tmpl.Source = source
	return tmpl, nil
}

func isPath(ref string) bool {
	return strings.ContainsRune(ref, os.PathSeparator) || strings.ContainsRune(ref, '/') ||
		strings.HasSuffix(ref, ".md")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// fieldNames returns the exported field names of Fields.
func fieldNames() map[string]bool {
	typ := reflect.TypeOf(Fields{})
	names := make(map[string]bool, typ.NumField())
	for i := range typ.NumField() {
		names[typ.Field(i).Name] = true
	}
	return names
}

// unknownFields walks the parse trees and reports field references that
// Fields cannot satisfy. Dot is the root inside the main body, inside
// if bodies, and inside defined templates invoked with the root dot.
// Variables bound to the root dot are followed as well. Inside range and
// with bodies dot is rebound and only root references are checked.
func unknownFields(tmpl *template.Template) []string {
	w := &fieldWalker{
		known: fieldNames(),
		seen:  map[string]bool{},
		roots: map[string]bool{},
	}
	if tmpl.Tree != nil && tmpl.Tree.Root != nil {
		w.node(tmpl.Tree.Root, true)
	}

	walked := map[string]bool{tmpl.Name(): true}
	for len(w.pending) > 0 {
		name := w.pending[0]
		w.pending = w.pending[1:]
		if walked[name] {
			continue
		}
		walked[name] = true

		def := tmpl.Lookup(name)
		if def == nil || def.Tree == nil || def.Tree.Root == nil {
			continue
		}
		w.roots = map[string]bool{}
		w.node(def.Tree.Root, true)
	}

	sort.Strings(w.unknown)
	return w.unknown
}

type fieldWalker struct {
	known   map[string]bool
	seen    map[string]bool
	unknown []string
	// roots holds the variables in scope, true when bound to the root dot.
	roots map[string]bool
	// pending lists defined templates invoked with the root dot.
	pending []string
}

func (w *fieldWalker) report(name string) {
	if w.known[name] || w.seen[name] {
		return
	}
	w.seen[name] = true
	w.unknown = append(w.unknown, "."+name)
}

func (w *fieldWalker) node(node parse.Node, dotIsRoot bool) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, child := range n.Nodes {
			w.node(child, dotIsRoot)
		}
	case *parse.ActionNode:
		w.pipe(n.Pipe, dotIsRoot)
		w.declare(n.Pipe, w.isRoot(n.Pipe, dotIsRoot))
	case *parse.IfNode:
		w.branch(&n.BranchNode, dotIsRoot, dotIsRoot, w.isRoot(n.Pipe, dotIsRoot))
	case *parse.RangeNode:
		w.branch(&n.BranchNode, false, dotIsRoot, false)
	case *parse.WithNode:
		root := w.isRoot(n.Pipe, dotIsRoot)
		w.branch(&n.BranchNode, root, dotIsRoot, root)
	case *parse.TemplateNode:
		w.pipe(n.Pipe, dotIsRoot)
		if w.isRoot(n.Pipe, dotIsRoot) {
			w.pending = append(w.pending, n.Name)
		}
	}
}

// branch walks a control structure. Variables declared in its pipeline or
// body go out of scope at its end.
func (w *fieldWalker) branch(n *parse.BranchNode, bodyDotIsRoot, dotIsRoot, declRoot bool) {
	saved := maps.Clone(w.roots)
	defer func() { w.roots = saved }()

	w.pipe(n.Pipe, dotIsRoot)
	w.declare(n.Pipe, declRoot)
	w.node(n.List, bodyDotIsRoot)
	if n.ElseList != nil {
		w.node(n.ElseList, dotIsRoot)
	}
}

func (w *fieldWalker) declare(pipe *parse.PipeNode, root bool) {
	if pipe == nil {
		return
	}
	for _, v := range pipe.Decl {
		if len(v.Ident) > 0 {
			w.roots[v.Ident[0]] = root
		}
	}
}

// isRoot reports whether pipe evaluates to the root dot.
func (w *fieldWalker) isRoot(pipe *parse.PipeNode, dotIsRoot bool) bool {
	if pipe == nil || len(pipe.Cmds) != 1 || len(pipe.Cmds[0].Args) != 1 {
		return false
	}
	switch a := pipe.Cmds[0].Args[0].(type) {
	case *parse.DotNode:
		return dotIsRoot
	case *parse.VariableNode:
		return len(a.Ident) == 1 && w.rootVar(a.Ident[0])
	}
	return false
}

func (w *fieldWalker) rootVar(name string) bool {
	return name == "$" || w.roots[name]
}

func (w *fieldWalker) pipe(pipe *parse.PipeNode, dotIsRoot bool) {
	if pipe == nil {
		return
	}
	for _, cmd := range pipe.Cmds {
		for _, arg := range cmd.Args {
			w.arg(arg, dotIsRoot)
		}
	}
}

func (w *fieldWalker) arg(arg parse.Node, dotIsRoot bool) {
	switch a := arg.(type) {
	case *parse.FieldNode:
		if dotIsRoot && len(a.Ident) > 0 {
			w.report(a.Ident[0])
		}
	case *parse.VariableNode:
		if len(a.Ident) > 1 && w.rootVar(a.Ident[0]) {
			w.report(a.Ident[1])
		}
	case *parse.ChainNode:
		w.arg(a.Node, dotIsRoot)
	case *parse.PipeNode:
		w.pipe(a, dotIsRoot)
	}
}
