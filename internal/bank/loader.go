package bank

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"sync"

	"golang.org/x/mod/semver"
)

// FormatVersion is the bank file format written by this build. Files with a
// different major version are rejected.
const FormatVersion = "v1.0.0"

// ErrUnsupportedFormat is returned for bank files of an unknown major version.
var ErrUnsupportedFormat = errors.New("unsupported bank format")

//go:embed data/*.json
var embedded embed.FS

// File is the on-disk representation of one bank file.
type File struct {
	Format    string     `json:"format"`
	Subject   string     `json:"subject"`
	Questions []Question `json:"questions"`
}

// Parse decodes and schema-checks a single bank file. name is used only in
// error messages.
func Parse(name string, data []byte) (*File, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	schema, err := compiledFileSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate %s: %w", name, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if !semver.IsValid(f.Format) || semver.Major(f.Format) != semver.Major(FormatVersion) {
		return nil, fmt.Errorf("%s: %w %q (want %s.x.x)", name, ErrUnsupportedFormat, f.Format, semver.Major(FormatVersion))
	}
	return &f, nil
}

// LoadFS reads every *.json file in dir of fsys, in lexical order, and
// builds a single validated Bank.
func LoadFS(fsys fs.FS, dir string) (*Bank, error) {
	names, err := fs.Glob(fsys, path.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list bank files: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no bank files in %q", dir)
	}
	sort.Strings(names)

	var all []Question
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		f, err := Parse(name, data)
		if err != nil {
			return nil, err
		}
		all = append(all, f.Questions...)
	}
	return New(all)
}

// LoadDir loads a bank from a directory on disk.
func LoadDir(dir string) (*Bank, error) {
	return LoadFS(os.DirFS(dir), ".")
}

var defaultBank = sync.OnceValues(func() (*Bank, error) {
	return LoadFS(embedded, "data")
})

// Default returns the bank compiled into the binary.
func Default() (*Bank, error) {
	return defaultBank()
}

// Encode renders a bank file with the current format version.
func Encode(subject string, questions []Question) ([]byte, error) {
	f := File{Format: FormatVersion, Subject: subject, Questions: questions}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode bank file: %w", err)
	}
	return append(data, '\n'), nil
}
