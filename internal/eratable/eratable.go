// Package eratable loads era tables from YAML files.
//
// A table lists every era the calendar should know about, in any order:
//
//	eras:
//	  - name: 令和
//	    romaji: Reiwa
//	    start: 2019-05-01
//	    aliases: [令, r, R]
//
// The loaded table replaces the built-in one entirely.
package eratable

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	wareki "github.com/rabitt1ove/jp-wareki"
)

// EnvVar names the environment variable consulted when no table file is
// given explicitly.
const EnvVar = "WAREKI_ERAS"

// File is the on-disk layout of an era table.
type File struct {
	Eras []Entry `yaml:"eras"`
}

// Entry is one era in a table file.
type Entry struct {
	Name    string   `yaml:"name"`
	Romaji  string   `yaml:"romaji,omitempty"`
	Start   string   `yaml:"start"` // YYYY-MM-DD
	Aliases []string `yaml:"aliases,omitempty"`
}

// Load parses a YAML era table and builds a calendar from it.
// Unknown fields are rejected so typos do not silently drop data.
func Load(r io.Reader) (*wareki.Calendar, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", wareki.ErrInvalidEraTable)
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return f.Calendar()
}

// LoadFile reads the era table at path.
func LoadFile(path string) (*wareki.Calendar, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read era table: %w", err)
	}
	defer fh.Close()

	cal, err := Load(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cal, nil
}

// Resolve returns the calendar for path, falling back to the file named by
// $WAREKI_ERAS and then to the built-in table.
func Resolve(path string) (*wareki.Calendar, string, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return wareki.Default(), "", nil
	}
	cal, err := LoadFile(path)
	if err != nil {
		return nil, path, err
	}
	return cal, path, nil
}

// Calendar validates the entries and builds a calendar.
func (f File) Calendar() (*wareki.Calendar, error) {
	eras := make([]wareki.Era, 0, len(f.Eras))
	for i, e := range f.Eras {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: eras[%d]: name is required", wareki.ErrInvalidEraTable, i)
		}
		start, err := time.Parse(time.DateOnly, e.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: eras[%d] (%s): start %q must be YYYY-MM-DD",
				wareki.ErrInvalidEraTable, i, e.Name, e.Start)
		}
		eras = append(eras, wareki.NewEra(e.Name, e.Romaji,
			start.Year(), start.Month(), start.Day(), e.Aliases...))
	}
	return wareki.New(eras...)
}

// FromCalendar converts a calendar's eras back to the file layout.
func FromCalendar(cal *wareki.Calendar) File {
	var f File
	for _, e := range cal.Eras() {
		f.Eras = append(f.Eras, Entry{
			Name:    e.Name,
			Romaji:  e.Romaji,
			Start:   e.Start().Format(time.DateOnly),
			Aliases: e.Aliases,
		})
	}
	return f
}

// Write encodes f as YAML.
func Write(w io.Writer, f File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return err
	}
	return enc.Close()
}
