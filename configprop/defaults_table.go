package configprop

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/raconfig/java"
)

var ErrNoRecordedDefault = errors.New("no recorded default")

// TableDefaults answers from a table generated at build time, keyed by
// class name and then accessor name. An empty or null value records that
// the accessor returns null.
//
//	com.acme.ra.AcmeResourceAdapter:
//	  getTimeout: "30"
//	  getServerName: null
type TableDefaults map[string]map[string]string

func (t TableDefaults) TryDefault(class *java.ClassModel, accessor string) (string, bool, error) {
	v, ok := t[class.Name][accessor]
	if !ok {
		return "", false, fmt.Errorf("%s.%s(): %w", class.Name, accessor, ErrNoRecordedDefault)
	}
	return v, v != "", nil
}

func LoadDefaultsTable(r io.Reader) (TableDefaults, error) {
	table := TableDefaults{}
	if err := yaml.NewDecoder(r).Decode(&table); err != nil {
		if errors.Is(err, io.EOF) {
			return table, nil
		}
		return nil, fmt.Errorf("decode defaults table: %w", err)
	}
	return table, nil
}

func LoadDefaultsFile(path string) (TableDefaults, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	table, err := LoadDefaultsTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}
