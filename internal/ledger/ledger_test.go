package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vigil/internal/logging"
)

func openTestStore(t *testing.T, root, day string) *Store {
	t.Helper()
	store, err := Open(root, day, logging.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return store
}

func TestOpenCreatesEmptyLedger(t *testing.T) {
	root := t.TempDir()
	store := openTestStore(t, root, "2026-08-31")

	if store.Len() != 0 {
		t.Fatalf("expected empty ledger, got %d records", store.Len())
	}

	path := filepath.Join(root, "2026-08-31", FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read ledger file: %v", err)
	}

	var doc struct {
		Day         string   `json:"day"`
		Screenshots []Record `json:"screenshots"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal ledger: %v", err)
	}
	if doc.Day != "2026-08-31" {
		t.Errorf("day = %q, want 2026-08-31", doc.Day)
	}
	if doc.Screenshots == nil {
		t.Error("screenshots should be an empty array, not null")
	}
}

func TestAppendAndReload(t *testing.T) {
	root := t.TempDir()
	store := openTestStore(t, root, "2026-08-31")

	records := []Record{
		{Filename: "screenshot_20260831_090000.png", Classification: ClassOnTask},
		{Filename: "screenshot_20260831_091500.png"},
		{Filename: "screenshot_20260831_093000.png", Classification: ClassOffTask},
	}
	for _, rec := range records {
		if err := store.Append(rec); err != nil {
			t.Fatalf("Append(%s): %v", rec.Filename, err)
		}
	}

	reloaded := openTestStore(t, root, "2026-08-31")
	got := reloaded.Records()
	if len(got) != 3 {
		t.Fatalf("reloaded %d records, want 3", len(got))
	}
	// capture order survives the round trip
	for i, rec := range records {
		if got[i].Filename != rec.Filename {
			t.Errorf("record %d = %s, want %s", i, got[i].Filename, rec.Filename)
		}
	}
	// a missing label defaults to none
	if got[1].Classification != ClassNone {
		t.Errorf("unlabeled record stored as %q, want %q", got[1].Classification, ClassNone)
	}
}

func TestAppendRejectsEmptyFilename(t *testing.T) {
	store := openTestStore(t, t.TempDir(), "2026-08-31")
	if err := store.Append(Record{}); err == nil {
		t.Fatal("expected error for empty filename")
	}
}

func TestOpenMalformedLedgerStartsEmpty(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "2026-08-31")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := openTestStore(t, root, "2026-08-31")
	if store.Len() != 0 {
		t.Fatalf("malformed ledger should read as empty, got %d records", store.Len())
	}

	// the damaged file is preserved until the first mutation
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{not json" {
		t.Error("damaged ledger rewritten before any mutation")
	}

	// the first mutation repairs it
	if err := store.Append(Record{Filename: "screenshot_20260831_120000.png"}); err != nil {
		t.Fatalf("Append after damage: %v", err)
	}
	reloaded := openTestStore(t, root, "2026-08-31")
	if reloaded.Len() != 1 {
		t.Fatalf("repaired ledger has %d records, want 1", reloaded.Len())
	}
}

func TestUpdateClassification(t *testing.T) {
	store := openTestStore(t, t.TempDir(), "2026-08-31")
	if err := store.Append(Record{Filename: "screenshot_20260831_090000.png"}); err != nil {
		t.Fatal(err)
	}

	found, err := store.UpdateClassification("screenshot_20260831_090000.png", ClassOnTask)
	if err != nil {
		t.Fatalf("UpdateClassification: %v", err)
	}
	if !found {
		t.Fatal("record not found")
	}

	rec, ok := store.Find("screenshot_20260831_090000.png")
	if !ok || rec.Classification != ClassOnTask {
		t.Fatalf("record = %+v, want on-task", rec)
	}

	// relabeling is allowed
	if _, err := store.UpdateClassification("screenshot_20260831_090000.png", ClassOffTask); err != nil {
		t.Fatal(err)
	}
	rec, _ = store.Find("screenshot_20260831_090000.png")
	if rec.Classification != ClassOffTask {
		t.Fatalf("relabel gave %q, want off-task", rec.Classification)
	}

	found, err = store.UpdateClassification("missing.png", ClassOnTask)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("update of a missing record reported found")
	}
}

func TestRemove(t *testing.T) {
	store := openTestStore(t, t.TempDir(), "2026-08-31")
	for _, name := range []string{
		"screenshot_20260831_090000.png",
		"screenshot_20260831_091500.png",
		"screenshot_20260831_093000.png",
	} {
		if err := store.Append(Record{Filename: name}); err != nil {
			t.Fatal(err)
		}
	}

	found, err := store.Remove("screenshot_20260831_091500.png")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !found {
		t.Fatal("record not found")
	}
	if store.Len() != 2 {
		t.Fatalf("len = %d after remove, want 2", store.Len())
	}

	got := store.Records()
	if got[0].Filename != "screenshot_20260831_090000.png" || got[1].Filename != "screenshot_20260831_093000.png" {
		t.Errorf("order disturbed after remove: %v", got)
	}

	// removing twice is not an error, just not found
	found, err = store.Remove("screenshot_20260831_091500.png")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("second remove reported found")
	}
}

func TestTotals(t *testing.T) {
	store := openTestStore(t, t.TempDir(), "2026-08-31")
	appendWithLabel := func(name string, class Classification) {
		t.Helper()
		if err := store.Append(Record{Filename: name, Classification: class}); err != nil {
			t.Fatal(err)
		}
	}

	appendWithLabel("screenshot_20260831_090000.png", ClassOnTask)
	appendWithLabel("screenshot_20260831_091000.png", ClassOnTask)
	appendWithLabel("screenshot_20260831_092000.png", ClassOffTask)
	appendWithLabel("screenshot_20260831_093000.png", ClassNone)
	appendWithLabel("screenshot_20260831_094000.png", "bogus")

	onTask, offTask, none := store.Totals()
	if onTask != 2 || offTask != 1 || none != 2 {
		t.Fatalf("totals = (%d, %d, %d), want (2, 1, 2)", onTask, offTask, none)
	}
	if onTask+offTask+none != store.Len() {
		t.Error("totals do not sum to record count")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	store := openTestStore(t, root, "2026-08-31")
	if err := store.Append(Record{Filename: "screenshot_20260831_090000.png"}); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(filepath.Join(root, "2026-08-31"))
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") || strings.Contains(entry.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestRecordsReturnsCopy(t *testing.T) {
	store := openTestStore(t, t.TempDir(), "2026-08-31")
	if err := store.Append(Record{Filename: "screenshot_20260831_090000.png"}); err != nil {
		t.Fatal(err)
	}

	got := store.Records()
	got[0].Classification = ClassOffTask

	rec, _ := store.Find("screenshot_20260831_090000.png")
	if rec.Classification != ClassNone {
		t.Error("mutating the returned slice changed the store")
	}
}

func TestRegistrySharesStores(t *testing.T) {
	reg := NewRegistry(t.TempDir(), logging.NewNop())

	first, err := reg.Get("2026-08-31")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	second, err := reg.Get("2026-08-31")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if first != second {
		t.Error("registry returned two stores for one day")
	}

	other, err := reg.Get("2026-09-01")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if other == first {
		t.Error("distinct days share a store")
	}
}

func TestParseClassification(t *testing.T) {
	cases := []struct {
		in   string
		want Classification
		ok   bool
	}{
		{"on-task", ClassOnTask, true},
		{"ON", ClassOnTask, true},
		{"off-task", ClassOffTask, true},
		{" none ", ClassNone, true},
		{"productive", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseClassification(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseClassification(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
