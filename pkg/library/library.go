// Package library lists and searches the on-disk query template library.
package library

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

const (
	// ExtWorkspace is the extension for workspace and hunting query text.
	ExtWorkspace = ".kql"
	// ExtInventory is the extension for resource inventory query text.
	ExtInventory = ".arg"

	// FolderHunting and FolderInventory are reserved top-level folders that
	// belong to their backends and never show up as workspace categories.
	FolderHunting   = "AdvancedHunting"
	FolderInventory = "ResourceGraph"

	// FolderScoped holds a category's resource-scoped template variants.
	FolderScoped = "Scoped"
)

// Template is one query file reference. Text is read lazily so browsing a
// large library stays cheap.
type Template struct {
	Path     string
	Name     string
	Category string

	inline string
}

// Inline wraps ad-hoc query text typed at the console as a Template.
func Inline(name, text string) Template {
	return Template{Name: name, inline: text}
}

// Text returns the raw template content.
func (t Template) Text() (string, error) {
	if t.inline != "" {
		return t.inline, nil
	}
	b, err := os.ReadFile(t.Path)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", t.Path, err)
	}
	return string(b), nil
}

// Category is one browsable subdirectory of the library root.
type Category struct {
	Name string
	Path string
}

// MissingFolderError reports an absent library folder a flow requires.
type MissingFolderError struct {
	Path string
}

func (e *MissingFolderError) Error() string {
	return fmt.Sprintf("library folder not found: %s", e.Path)
}

// Categories returns the subdirectories of root sorted by name, excluding
// the two reserved backend folders.
func Categories(root string) ([]Category, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading library root %s: %w", root, err)
	}

	var out []Category
	for _, e := range entries {
		if !e.IsDir() || e.Name() == FolderHunting || e.Name() == FolderInventory {
			continue
		}
		out = append(out, Category{Name: e.Name(), Path: filepath.Join(root, e.Name())})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Templates returns the templates directly under dir with the given
// extension, sorted by name.
func Templates(dir, ext string) ([]Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingFolderError{Path: dir}
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var out []Template
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		out = append(out, Template{
			Path:     filepath.Join(dir, e.Name()),
			Name:     strings.TrimSuffix(e.Name(), ext),
			Category: filepath.Base(dir),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ScopedDir returns the resource-scoped variant folder for a category, or a
// MissingFolderError when the category has none.
func ScopedDir(categoryPath string) (string, error) {
	dir := filepath.Join(categoryPath, FolderScoped)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", &MissingFolderError{Path: dir}
	}
	return dir, nil
}

// BackendDir returns root/name, failing with MissingFolderError when the
// reserved backend folder is absent.
func BackendDir(root, name string) (string, error) {
	dir := filepath.Join(root, name)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", &MissingFolderError{Path: dir}
	}
	return dir, nil
}

// Search walks root for templates with one of the given extensions whose
// file name or content contains keyword as a case-sensitive literal
// substring. Directories named in skipDirs are not descended into. The
// keyword is quoted before matching so regex metacharacters in it match
// literally.
func Search(root, keyword string, exts []string, skipDirs ...string) ([]Template, error) {
	re, err := regexp.Compile(regexp.QuoteMeta(keyword))
	if err != nil {
		return nil, fmt.Errorf("bad search keyword %q: %w", keyword, err)
	}

	skip := make(map[string]bool, len(skipDirs))
	for _, d := range skipDirs {
		skip[d] = true
	}

	var out []Template
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skip[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		matched := false
		for _, ext := range exts {
			if strings.HasSuffix(d.Name(), ext) {
				matched = true
				break
			}
		}
		if !matched {
			return nil
		}
		if re.MatchString(d.Name()) {
			out = append(out, templateAt(path))
			return nil
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if re.Match(b) {
			out = append(out, templateAt(path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", root, err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func templateAt(path string) Template {
	name := filepath.Base(path)
	return Template{
		Path:     path,
		Name:     strings.TrimSuffix(name, filepath.Ext(name)),
		Category: filepath.Base(filepath.Dir(path)),
	}
}
