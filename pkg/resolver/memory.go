package resolver

import (
	"cmp"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// File is an example or include file known by name.
type File struct {
	// Name is the name used in \include commands, e.g. "example.cpp".
	Name string `yaml:"name"`

	// Path is the location the file was read from.
	Path string `yaml:"path,omitempty"`

	// Text is the file content. When empty, ReadFile reads Path from disk.
	Text string `yaml:"text,omitempty"`
}

// Memory is an in-memory Resolver.
// It is safe for concurrent use.
type Memory struct {
	mu        sync.RWMutex
	entities  map[string]Entity
	sections  map[string]Section
	files     map[string]File
	xrefs     map[string]map[int]XRefItem
	citations map[string]string
	formulas  map[int]string

	// dirs are searched on disk when a file is not registered.
	dirs []string
}

// NewMemory creates an empty resolver that searches dirs for include files.
func NewMemory(dirs ...string) *Memory {
	return &Memory{
		entities:  make(map[string]Entity),
		sections:  make(map[string]Section),
		files:     make(map[string]File),
		xrefs:     make(map[string]map[int]XRefItem),
		citations: make(map[string]string),
		formulas:  make(map[int]string),
		dirs:      dirs,
	}
}

// AddEntity registers e under its qualified name, replacing any previous one.
func (m *Memory) AddEntity(e Entity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entities[e.Name] = e
}

// AddSection registers s under its label. A second definition of the same
// label keeps the first and increments its Dupes count.
func (m *Memory) AddSection(s Section) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.sections[s.Label]; ok {
		prev.Dupes++
		m.sections[s.Label] = prev
		return
	}
	m.sections[s.Label] = s
}

// AddFile registers f under its name.
func (m *Memory) AddFile(f File) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f.Path == "" {
		f.Path = f.Name
	}
	m.files[f.Name] = f
}

// AddXRefItem registers item in its list.
func (m *Memory) AddXRefItem(item XRefItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.xrefs[item.List]
	if list == nil {
		list = make(map[int]XRefItem)
		m.xrefs[item.List] = list
	}
	list[item.ID] = item
}

// AddCitation registers a bibliography key with its display label.
func (m *Memory) AddCitation(key, label string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.citations[key] = label
}

// AddFormula registers the text of formula id.
func (m *Memory) AddFormula(id int, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.formulas[id] = text
}

// Resolve looks name up in scope, then in each enclosing scope, then globally.
func (m *Memory) Resolve(scope, name string) (Entity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.resolveLocked(scope, normalizeName(name))
}

func (m *Memory) resolveLocked(scope, name string) (Entity, bool) {
	if name == "" {
		return Entity{}, false
	}
	if strings.HasPrefix(name, "::") {
		e, ok := m.entities[name[2:]]
		return e, ok
	}

	for scope != "" {
		if e, ok := m.entities[scope+"::"+name]; ok {
			return e, true
		}
		idx := strings.LastIndex(scope, "::")
		if idx < 0 {
			break
		}
		scope = scope[:idx]
	}

	e, ok := m.entities[name]
	return e, ok
}

// ResolveLink resolves a \link or \ref target. Labels of sections take
// precedence over entity names.
func (m *Memory) ResolveLink(scope, target string, inSeeBlock bool) (Entity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if s, ok := m.sections[target]; ok {
		return Entity{Name: s.Label, Kind: KindPage, File: s.File, Anchor: s.Anchor, External: s.External}, true
	}

	name := normalizeName(target)
	if inSeeBlock && scope != "" && !strings.Contains(name, "::") {
		if e, ok := m.entities[scope+"::"+name]; ok {
			return e, true
		}
	}
	return m.resolveLocked(scope, name)
}

// LookupDocs finds the entity whose documentation is copied by \copydoc.
func (m *Memory) LookupDocs(scope, name string) (Entity, bool) {
	return m.Resolve(scope, name)
}

// Reimplements returns the member that member overrides.
func (m *Memory) Reimplements(member string) (Entity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entities[member]
	if !ok || e.Reimplements == "" {
		return Entity{}, false
	}
	base, ok := m.entities[e.Reimplements]
	return base, ok
}

// Section looks up a labelled location.
func (m *Memory) Section(label string) (Section, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sections[label]
	return s, ok
}

// FindFile locates name among the registered files, matching either the
// full name or its base name, and then in the search directories.
func (m *Memory) FindFile(name string) (string, []string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if f, ok := m.files[name]; ok {
		return f.Path, nil, true
	}

	var matches []string
	for key, f := range m.files {
		if path.Base(key) == name || strings.HasSuffix(key, "/"+name) {
			matches = append(matches, f.Path)
		}
	}
	for _, dir := range m.dirs {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			matches = append(matches, candidate)
		}
	}

	slices.SortFunc(matches, cmp.Compare[string])
	matches = slices.Compact(matches)

	switch len(matches) {
	case 0:
		return "", nil, false
	case 1:
		return matches[0], nil, true
	default:
		return "", matches, false
	}
}

// ReadFile returns the text of a file found by FindFile.
func (m *Memory) ReadFile(p string) (string, error) {
	m.mu.RLock()
	for _, f := range m.files {
		if f.Path == p && f.Text != "" {
			m.mu.RUnlock()
			return f.Text, nil
		}
	}
	m.mu.RUnlock()

	data, err := os.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", p, err)
	}
	return string(data), nil
}

// XRefItem looks up item id of list.
func (m *Memory) XRefItem(list string, id int) (XRefItem, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.xrefs[list][id]
	return item, ok
}

// Cite returns the display label of a bibliography key.
func (m *Memory) Cite(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	label, ok := m.citations[key]
	return label, ok
}

// Formula returns the text of formula id.
func (m *Memory) Formula(id int) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	text, ok := m.formulas[id]
	return text, ok
}

// Entities returns all registered entities sorted by name.
func (m *Memory) Entities() []Entity {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Entity, 0, len(m.entities))
	for _, e := range m.entities {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entity) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// normalizeName turns a reference as written in a comment into the key
// entities are stored under: Java-style "Class#member" becomes
// "Class::member" and an argument list is dropped.
func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "#", "::")
	if idx := strings.IndexByte(name, '('); idx > 0 {
		name = name[:idx]
	}
	return strings.TrimSpace(name)
}

var _ Resolver = (*Memory)(nil)
