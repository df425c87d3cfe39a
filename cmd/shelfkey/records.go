package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nainya/shelfkey/pkg/holding"
)

// recordFile is the YAML layout read by resolve and index.
type recordFile struct {
	Records []holding.RecordSpec `yaml:"records"`
}

// readRecords decodes path, or standard input for "-".
func readRecords(path string, stdin io.Reader) ([]holding.RecordSpec, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var file recordFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if len(file.Records) == 0 {
		return nil, fmt.Errorf("%s: no records", path)
	}
	return file.Records, nil
}
