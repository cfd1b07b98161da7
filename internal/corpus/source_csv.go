package corpus

import (
	"bytes"
	"context"
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

//go:embed data/builtin.csv
var builtinData embed.FS

// CSVFile reads a corpus from a CSV file on disk.
type CSVFile struct {
	Path string
}

func (f CSVFile) FetchAllRows(_ context.Context) ([][]string, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer fh.Close()
	return readCSV(fh)
}

func (f CSVFile) String() string {
	return "csv:" + f.Path
}

// Builtin returns the sample corpus bundled with the binary.
func Builtin() Source {
	return builtinSource{}
}

type builtinSource struct{}

func (builtinSource) FetchAllRows(_ context.Context) ([][]string, error) {
	data, err := builtinData.ReadFile("data/builtin.csv")
	if err != nil {
		return nil, fmt.Errorf("read builtin corpus: %w", err)
	}
	return readCSV(bytes.NewReader(data))
}

func (builtinSource) String() string {
	return "builtin"
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return records, nil
}
