// Package export writes decoded entries to columnar files for later
// analysis outside the tool.
package export

import (
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"pansyslog.io/models"
)

// ParquetExporter writes one models.FieldRow per decoded field.
type ParquetExporter struct {
	file   source.ParquetFile
	writer *writer.ParquetWriter
	rows   int64
	closed bool
}

// NewParquetExporter creates (or truncates) path.
func NewParquetExporter(path string, parallelism int64) (*ParquetExporter, error) {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet file: %w", err)
	}

	pw, err := writer.NewParquetWriter(fw, new(models.FieldRow), parallelism)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	return &ParquetExporter{file: fw, writer: pw}, nil
}

// WriteEntry appends every mapped field of entry.
func (e *ParquetExporter) WriteEntry(entry *models.PANLogEntry) error {
	if e.closed {
		return fmt.Errorf("parquet exporter already closed")
	}
	for i, value := range entry.Values {
		name, err := entry.Schema.NameAt(i)
		if err != nil {
			return err
		}
		row := models.FieldRow{
			Line:     int64(entry.LineNum),
			LogType:  entry.LogType,
			Position: int32(i),
			Name:     name,
			Value:    value,
		}
		if err := e.writer.Write(row); err != nil {
			return fmt.Errorf("failed to write parquet row: %w", err)
		}
		e.rows++
	}
	return nil
}

// Rows is the number of field rows written so far.
func (e *ParquetExporter) Rows() int64 {
	return e.rows
}

// Close writes the footer and closes the file. Later calls are no-ops.
func (e *ParquetExporter) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	stopErr := e.writer.WriteStop()
	closeErr := e.file.Close()
	if stopErr != nil {
		return fmt.Errorf("failed to finish parquet file: %w", stopErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close parquet file: %w", closeErr)
	}
	return nil
}

// ReadFieldRows loads every row of a file written by ParquetExporter.
func ReadFieldRows(path string) ([]models.FieldRow, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(models.FieldRow), 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pr.ReadStop()

	rows := make([]models.FieldRow, int(pr.GetNumRows()))
	if len(rows) == 0 {
		return rows, nil
	}
	if err := pr.Read(&rows); err != nil {
		return nil, fmt.Errorf("failed to read parquet rows: %w", err)
	}
	return rows, nil
}
