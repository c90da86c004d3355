package java

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// LoadSources parses every .java file below root with at most workers files
// in flight and returns the models sorted by name, with cross-file references
// resolved. Build output and hidden directories are skipped.
func LoadSources(ctx context.Context, root string, workers int, cache *SourceCache) ([]*ClassModel, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".java") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([][]*ClassModel, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				rel = path
			}
			models, err := cache.Parse(ctx, src, filepath.ToSlash(rel))
			if err != nil {
				return err
			}
			results[i] = models
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var classes []*ClassModel
	for _, models := range results {
		classes = append(classes, models...)
	}
	ResolveReferences(classes)
	sort.Slice(classes, func(i, j int) bool {
		return classes[i].Name < classes[j].Name
	})
	return classes, nil
}

func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "target", "build", "bin", "out", "classes", "node_modules", "vendor":
		return true
	}
	return false
}

// typeTable is the YAML form of a list of class models. Tables describe
// types that are only available in compiled form, such as library base
// classes.
type typeTable struct {
	Types []*ClassModel `yaml:"types"`
}

// LoadTypes reads a YAML type table.
func LoadTypes(r io.Reader) ([]*ClassModel, error) {
	var table typeTable
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&table); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode type table: %w", err)
	}
	for i, c := range table.Types {
		if c == nil || c.Name == "" {
			return nil, fmt.Errorf("type table entry %d: missing name", i)
		}
		if c.SimpleName == "" {
			c.SimpleName = simpleName(c.Name)
		}
		if c.Package == "" {
			c.Package = packageName(c.Name)
		}
		if c.Kind == "" {
			c.Kind = ClassKindClass
		}
		if c.Visibility == "" {
			c.Visibility = VisibilityPublic
		}
		if c.Kind == ClassKindClass && c.SuperClass == "" && c.Name != ObjectType {
			c.SuperClass = ObjectType
		}
	}
	return table.Types, nil
}

func LoadTypesFile(path string) ([]*ClassModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	classes, err := LoadTypes(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return classes, nil
}

// WriteTypes writes classes as a YAML type table readable by LoadTypes.
func WriteTypes(w io.Writer, classes []*ClassModel) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(typeTable{Types: classes}); err != nil {
		return err
	}
	return enc.Close()
}
