package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/salesight/salesight/internal/domain"
	"github.com/salesight/salesight/internal/normalize"
)

// Pipeline parses uploaded files into raw rows and drives the normalizer
// over them. Any file that cannot be decoded aborts the whole batch; a
// partially corrupt multi-file upload is never silently ingested.
type Pipeline struct {
	normalizer *normalize.Normalizer
}

func NewPipeline(normalizer *normalize.Normalizer) *Pipeline {
	return &Pipeline{normalizer: normalizer}
}

// Parse decodes every file by extension and concatenates the raw rows,
// discarding rows whose every value is blank.
func (p *Pipeline) Parse(files []domain.UploadedFile) ([]normalize.RawRow, error) {
	all := make([]normalize.RawRow, 0)

	for _, file := range files {
		rows, err := p.decode(file)
		if err != nil {
			return nil, &domain.DecodeError{File: file.Filename, Err: err}
		}
		log.Debug().Str("file", file.Filename).Int("rows", len(rows)).Msg("decoded upload")
		all = append(all, rows...)
	}

	kept := all[:0]
	for _, row := range all {
		if rowHasData(row) {
			kept = append(kept, row)
		}
	}

	return kept, nil
}

// Process runs the full ingest: parse, filter, normalize.
func (p *Pipeline) Process(files []domain.UploadedFile) ([]domain.SalesRecord, error) {
	rows, err := p.Parse(files)
	if err != nil {
		return nil, err
	}
	return p.normalizer.NormalizeAll(rows), nil
}

func (p *Pipeline) decode(file domain.UploadedFile) ([]normalize.RawRow, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".csv":
		return decodeDelimited(file.Data, ',')
	case ".tsv":
		return decodeDelimited(file.Data, '\t')
	case ".xlsx", ".xlsm", ".xls":
		return decodeWorkbook(file.Data)
	case ".json":
		return decodeJSON(file.Data)
	default:
		return nil, fmt.Errorf("unsupported file extension %s", ext)
	}
}

// rowHasData keeps any row with at least one populated value. Partial rows
// survive because defaults make them informative downstream.
func rowHasData(row normalize.RawRow) bool {
	for _, v := range row {
		if v == nil {
			continue
		}
		s := strings.TrimSpace(fmt.Sprintf("%v", v))
		if s != "" && s != "null" && s != "undefined" {
			return true
		}
	}
	return false
}
