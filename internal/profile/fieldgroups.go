package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

const DefaultGroupKey = "group_author_profile"

// FieldGroup is an exported field group definition, stored as <key>.json in the
// schema export directory.
type FieldGroup struct {
	Key      string            `json:"key"`
	Title    string            `json:"title"`
	Fields   []FieldDefinition `json:"fields"`
	Location [][]LocationRule  `json:"location"`
	Active   bool              `json:"active"`
}

type FieldDefinition struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Name  string `json:"name"`
	Type  string `json:"type"`
}

type LocationRule struct {
	Param    string `json:"param"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// SavePath is where field group definitions are written.
func SavePath(dir string) string {
	return filepath.Clean(dir)
}

// DefaultFieldGroup describes the profile attributes attached to every user form.
func DefaultFieldGroup() FieldGroup {
	group := FieldGroup{
		Key:      DefaultGroupKey,
		Title:    "Author Profile",
		Location: [][]LocationRule{{{Param: "user_form", Operator: "==", Value: "all"}}},
		Active:   true,
	}
	for _, f := range fields {
		group.Fields = append(group.Fields, FieldDefinition{
			Key:   "field_" + f.Name,
			Label: f.Label,
			Name:  f.Name,
			Type:  string(f.Kind),
		})
	}
	return group
}

// SaveFieldGroup writes the group under SavePath(dir) unless a file for it already exists.
// The file appears atomically, so concurrent readers never see a partial group.
// It reports whether a file was written.
func SaveFieldGroup(dir string, group FieldGroup) (bool, error) {
	data, err := json.MarshalIndent(group, "", "    ")
	if err != nil {
		return false, fmt.Errorf("failed to encode field group %s: %w", group.Key, err)
	}

	path := filepath.Join(SavePath(dir), group.Key+".json")
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	tmp, err := os.CreateTemp(SavePath(dir), "."+group.Key+"-*.tmp")
	if err != nil {
		return false, fmt.Errorf("failed to create temp file for %s: %w", group.Key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return false, fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}

	if err := os.Link(tmp.Name(), path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return true, nil
}

// LoadFieldGroups reads every *.json group in dir. A missing directory yields no
// groups. Field names outside the profile table are logged and kept.
func LoadFieldGroups(dir string, log *logrus.Logger) ([]FieldGroup, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list field groups: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	groups := make([]FieldGroup, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read field group %s: %w", name, err)
		}

		var group FieldGroup
		if err := json.Unmarshal(data, &group); err != nil {
			return nil, fmt.Errorf("failed to parse field group %s: %w", name, err)
		}

		for _, def := range group.Fields {
			if _, ok := Lookup(def.Name); !ok {
				log.WithFields(logrus.Fields{"group": group.Key, "field": def.Name}).Warn("field group references unknown profile field")
			}
		}
		groups = append(groups, group)
	}
	return groups, nil
}
