package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cognicore/docnorm/pkg/docnorm/internalerr"
	"github.com/cognicore/docnorm/pkg/docnorm/javadoc"
	"github.com/cognicore/docnorm/pkg/docnorm/store"
)

// maxLine bounds a single JSONL line; long method docs fit comfortably.
const maxLine = 4 << 20

// LoadRecords loads method records from a JSONL file.
func LoadRecords(path string) ([]javadoc.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ReadRecords decodes one method record per line. Malformed lines and
// records whose parameter names repeat are logged and skipped; the line
// order is kept.
func ReadRecords(r io.Reader) ([]javadoc.Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var records []javadoc.Record
	for n := 1; sc.Scan(); n++ {
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}

		var rec javadoc.Record
		if err := json.Unmarshal(text, &rec); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d: %v", n, err)
			continue
		}
		if err := rec.Validate(); err != nil {
			log.Printf("Warning: skipping record at line %d: %v", n, err)
			continue
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no valid records: %w", internalerr.ErrInvalidInput)
	}
	return records, nil
}

// line is the output shape of one flattened record
type line struct {
	Index  int             `json:"index"`
	Fields []javadoc.Field `json:"fields"`
}

// WriteRecords writes flattened records, one JSON object per line.
func WriteRecords(w io.Writer, records []store.Record) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		if err := enc.Encode(line{Index: rec.Index, Fields: rec.Fields}); err != nil {
			return fmt.Errorf("encode record %d: %w", rec.Index, err)
		}
	}
	return bw.Flush()
}

// WriteFile writes flattened records to path.
func WriteFile(path string, records []store.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteRecords(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
