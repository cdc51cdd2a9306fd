package jsonl

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/docnorm/pkg/docnorm/internalerr"
	"github.com/cognicore/docnorm/pkg/docnorm/javadoc"
	"github.com/cognicore/docnorm/pkg/docnorm/store"
)

func TestLoadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "methods.jsonl")
	content := `{"params":[{"name":"x"}],"head":"Returns x.","param_descriptions":["the x"],"results":["x"]}
not json
{"head":"Second."}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := LoadRecords(path)
	if err != nil {
		t.Fatalf("LoadRecords failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Params[0].Name != "x" || records[0].ParamDescriptions[0] != "the x" {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[1].Head != "Second." {
		t.Errorf("unexpected second record: %+v", records[1])
	}
}

func TestLoadRecordsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl")
	if err := os.WriteFile(path, []byte("\n\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRecords(path); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for file without records, got %v", err)
	}
}

func TestReadRecordsSkipsRepeatedParams(t *testing.T) {
	input := `{"params":[{"name":"x"},{"name":"X"}],"head":"Clash."}
{"params":[{"name":"arg0"},{"name":"arg1"}],"head":"Fine."}
{"params":[{"name":""}],"head":"Nameless."}
`
	records, err := ReadRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadRecords failed: %v", err)
	}
	if len(records) != 1 || records[0].Head != "Fine." {
		t.Errorf("expected only the valid record, got %+v", records)
	}
}

func TestLoadRecordsMissing(t *testing.T) {
	if _, err := LoadRecords(filepath.Join(t.TempDir(), "missing.jsonl")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteRecords(t *testing.T) {
	var buf bytes.Buffer
	records := []store.Record{
		{Index: 2, Fields: []javadoc.Field{{Name: "head", Text: "a <b> c"}}},
		{Index: 5, Fields: []javadoc.Field{{Name: "head", Text: "d"}}},
	}
	if err := WriteRecords(&buf, records); err != nil {
		t.Fatalf("WriteRecords failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	want := `{"index":2,"fields":[{"name":"head","text":"a <b> c"}]}`
	if lines[0] != want {
		t.Errorf("got %s\nwant %s", lines[0], want)
	}
}
