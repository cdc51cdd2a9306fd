package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/cognicore/docnorm/pkg/docnorm/internalerr"
	"github.com/cognicore/docnorm/pkg/docnorm/javadoc"
	"github.com/cognicore/docnorm/pkg/docnorm/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSQLiteSaveAndGetRun(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	run := store.Run{
		ID:        "01HZXRUN",
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Total:     4,
		Dropped:   1,
		Failed:    1,
		Records: []store.Record{
			{Index: 0, Fields: []javadoc.Field{
				{Name: "head", Text: "returns VARIABLE0"},
				{Name: "params", Text: "the value"},
				{Name: "variables", Text: "VARIABLE0"},
				{Name: "results", Text: ""},
			}},
			{Index: 3, Fields: []javadoc.Field{
				{Name: "head", Text: "sets NUMBER"},
			}},
		},
	}

	if err := st.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := st.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Errorf("CreatedAt mismatch: got %v, want %v", got.CreatedAt, run.CreatedAt)
	}
	if got.Total != 4 || got.Dropped != 1 || got.Failed != 1 {
		t.Errorf("counter mismatch: %+v", got)
	}
	if len(got.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(got.Records))
	}
	if got.Records[0].Index != 0 || len(got.Records[0].Fields) != 4 {
		t.Errorf("unexpected first record: %+v", got.Records[0])
	}
	if got.Records[0].Fields[2] != (javadoc.Field{Name: "variables", Text: "VARIABLE0"}) {
		t.Errorf("field order not preserved: %+v", got.Records[0].Fields)
	}
	if got.Records[1].Index != 3 {
		t.Errorf("Expected second record index 3, got %d", got.Records[1].Index)
	}
}

func TestSQLiteSaveRunReplaces(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	first := store.Run{ID: "r", CreatedAt: time.Now(), Total: 1, Records: []store.Record{
		{Index: 0, Fields: []javadoc.Field{{Name: "head", Text: "old"}}},
	}}
	second := store.Run{ID: "r", CreatedAt: time.Now(), Total: 1, Records: []store.Record{
		{Index: 0, Fields: []javadoc.Field{{Name: "head", Text: "new"}}},
	}}
	if err := st.SaveRun(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := st.SaveRun(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, err := st.GetRun(ctx, "r")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Records) != 1 || len(got.Records[0].Fields) != 1 || got.Records[0].Fields[0].Text != "new" {
		t.Errorf("expected replaced run, got %+v", got.Records)
	}
}

func TestSQLiteGetRunNotFound(t *testing.T) {
	_, err := openTestStore(t).GetRun(context.Background(), "missing")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteListRuns(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		run := store.Run{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute), Total: i}
		if err := st.SaveRun(ctx, run); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := st.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "c" || runs[1].ID != "b" {
		t.Errorf("unexpected runs: %+v", runs)
	}

	all, err := st.ListRuns(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 runs, got %d", len(all))
	}
}
