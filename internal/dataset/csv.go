package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrEmptyDataset is returned when a source yields no samples.
var ErrEmptyDataset = errors.New("dataset: no samples")

// LoadCSV reads samples from a comma separated file: four features then a
// 0/1 label per row. Blank lines, '#' comments and a leading header row are
// skipped.
func LoadCSV(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open dataset %q", path)
	}
	defer f.Close()

	samples, err := ReadCSV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read dataset %q", path)
	}
	return samples, nil
}

// ReadCSV is LoadCSV over an arbitrary reader.
func ReadCSV(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var samples []Sample
	for row := 0; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WithStack(err)
		}
		line, _ := cr.FieldPos(0)
		if len(record) != NumFeatures+1 {
			return nil, errors.Errorf("line %d: want %d fields, got %d", line, NumFeatures+1, len(record))
		}
		s, err := parseRecord(record)
		if err != nil {
			if row == 0 && isHeader(record) {
				continue
			}
			return nil, errors.Wrapf(err, "line %d", line)
		}
		samples = append(samples, s)
	}
	if len(samples) == 0 {
		return nil, ErrEmptyDataset
	}
	return samples, nil
}

func parseRecord(record []string) (Sample, error) {
	var s Sample
	for i := 0; i < NumFeatures; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
		if err != nil {
			return Sample{}, errors.Wrapf(err, "feature %d", i)
		}
		s.Features[i] = v
	}
	label, err := strconv.Atoi(strings.TrimSpace(record[NumFeatures]))
	if err != nil {
		return Sample{}, errors.Wrap(err, "label")
	}
	if label != Setosa && label != Versicolor {
		return Sample{}, errors.Errorf("label must be 0 or 1, got %d", label)
	}
	s.Label = label
	return s, nil
}

func isHeader(record []string) bool {
	for _, field := range record {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err == nil {
			return false
		}
	}
	return true
}
