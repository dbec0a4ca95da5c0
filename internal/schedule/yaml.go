package schedule

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"flightconnect/pkg/logger"
)

type scheduleFile struct {
	Flights []FlightRecord `yaml:"flights"`
}

// ReadRecords decodes a schedule file of the form `flights: [...]`.
func ReadRecords(path string) ([]FlightRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schedule file: %w", err)
	}
	defer f.Close()

	var doc scheduleFile
	if err := yaml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode schedule file %s: %w", path, err)
	}
	return doc.Flights, nil
}

// FileSource loads the schedule snapshot from a YAML file.
type FileSource struct {
	path   string
	logger logger.Logger
}

func NewFileSource(path string, log logger.Logger) *FileSource {
	return &FileSource{path: path, logger: log}
}

func (s *FileSource) LoadTemplates(ctx context.Context) ([]FlightTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := ReadRecords(s.path)
	if err != nil {
		return nil, err
	}
	return templatesFrom(records, s.logger), nil
}
