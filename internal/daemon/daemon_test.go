package daemon

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"vigil/internal/config"
	"vigil/internal/ledger"
	"vigil/internal/logging"
	"vigil/internal/monitor"
	"vigil/internal/review"
)

type staticSource struct{}

func (staticSource) Capture(context.Context) (image.Image, error) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), A: 255})
		}
	}
	return img, nil
}

func testDaemon(t *testing.T) (*Daemon, *ledger.Registry, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Capture.SaveDir = filepath.Join(dir, "screenshots")
	cfg.Capture.IntervalMin = 1
	cfg.Capture.IntervalMax = 1
	cfg.Capture.PixelSize = 2
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Paths.SocketPath = filepath.Join(dir, "vigild.sock")
	cfg.Paths.LockPath = filepath.Join(dir, "vigild.lock")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}

	logger := logging.NewNop()
	registry := ledger.NewRegistry(cfg.Capture.SaveDir, logger)
	resolver := review.NewResolver(logger, nil)
	dispatcher := review.NewDispatcher(resolver, review.Deferring{}, logger)
	scheduler := monitor.New(&cfg, "2026-08-31", registry, staticSource{}, dispatcher, nil, logger)

	d, err := New(&cfg, registry, scheduler, dispatcher, resolver, nil, logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d, registry, &cfg
}

func TestDaemonStartStop(t *testing.T) {
	d, registry, _ := testDaemon(t)

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := d.Start(context.Background()); err == nil {
		t.Error("second Start accepted")
	}

	store, err := registry.Get("2026-08-31")
	if err != nil {
		t.Fatal(err)
	}
	deadline := time.After(5 * time.Second)
	for store.Len() == 0 {
		select {
		case <-deadline:
			t.Fatal("no capture persisted")
		case <-time.After(20 * time.Millisecond):
		}
	}

	d.Stop()
	if d.Status().Running {
		t.Error("running after Stop")
	}
	d.Stop() // idempotent
}

func TestDaemonConcurrentStartStop(t *testing.T) {
	d, _, _ := testDaemon(t)

	// RPC serves requests concurrently, so racing start and stop calls
	// must serialize instead of leaving a live capture loop behind.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				d.Start(context.Background())
				d.Stop()
			}
		}()
	}
	wg.Wait()

	if d.Status().Running {
		t.Fatal("running after every Stop returned")
	}
	captures := d.Status().Monitor.Captures
	time.Sleep(1500 * time.Millisecond)
	if got := d.Status().Monitor.Captures; got != captures {
		t.Errorf("captures continued after Stop: %d -> %d", captures, got)
	}
}

func TestDaemonStatus(t *testing.T) {
	d, registry, cfg := testDaemon(t)

	store, err := registry.Get("2026-08-31")
	if err != nil {
		t.Fatal(err)
	}
	seed := []ledger.Record{
		{Filename: "screenshot_20260831_090000.png", Classification: ledger.ClassOnTask},
		{Filename: "screenshot_20260831_091000.png", Classification: ledger.ClassOffTask},
		{Filename: "screenshot_20260831_092000.png"},
	}
	for _, rec := range seed {
		if err := store.Append(rec); err != nil {
			t.Fatal(err)
		}
	}

	st := d.Status()
	if st.Running {
		t.Error("reported running before Start")
	}
	if st.Monitor.Day != "2026-08-31" {
		t.Errorf("day = %q", st.Monitor.Day)
	}
	if st.OnTask != 1 || st.OffTask != 1 || st.None != 1 {
		t.Errorf("totals = (%d, %d, %d), want (1, 1, 1)", st.OnTask, st.OffTask, st.None)
	}
	if st.SaveDir != cfg.Capture.SaveDir {
		t.Errorf("save dir = %q", st.SaveDir)
	}
	if st.SessionID == "" {
		t.Error("empty session id")
	}
	if st.PID != os.Getpid() {
		t.Errorf("pid = %d", st.PID)
	}
}

func TestDaemonPendingFiltersLabeled(t *testing.T) {
	d, registry, _ := testDaemon(t)
	store, _ := registry.Get("2026-08-31")
	records := []ledger.Record{
		{Filename: "screenshot_20260831_090000.png", Classification: ledger.ClassOnTask},
		{Filename: "screenshot_20260831_091000.png"},
		{Filename: "screenshot_20260831_092000.png"},
	}
	for _, rec := range records {
		if err := store.Append(rec); err != nil {
			t.Fatal(err)
		}
	}

	pending, err := d.Pending("2026-08-31")
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("%d pending, want 2", len(pending))
	}
	for _, rec := range pending {
		if rec.Classification != ledger.ClassNone {
			t.Errorf("labeled record in pending set: %+v", rec)
		}
	}
}

func TestDaemonResolve(t *testing.T) {
	d, registry, _ := testDaemon(t)
	store, _ := registry.Get("2026-08-31")
	const filename = "screenshot_20260831_090000.png"
	if err := store.Append(ledger.Record{Filename: filename}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.ImagePath(filename), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := d.Resolve(context.Background(), "2026-08-31", filename, review.DecisionOnTask); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	onTask, _, _, err := d.Totals("2026-08-31")
	if err != nil {
		t.Fatal(err)
	}
	if onTask != 1 {
		t.Errorf("on-task = %d after resolve", onTask)
	}

	if err := d.Resolve(context.Background(), "2026-08-31", filename, review.DecisionDiscard); err != nil {
		t.Fatalf("Resolve discard: %v", err)
	}
	if store.Len() != 0 {
		t.Error("record survived discard")
	}
	if _, err := os.Stat(store.ImagePath(filename)); !os.IsNotExist(err) {
		t.Error("image survived discard")
	}

	if err := d.Resolve(context.Background(), "2026-08-31", "screenshot_20260831_235959.png", review.DecisionOnTask); err == nil {
		t.Error("resolving a missing record succeeded")
	}
}

func TestDaemonRejectsInvalidDay(t *testing.T) {
	d, _, _ := testDaemon(t)
	if _, err := d.Records("08/31/2026"); err == nil {
		t.Error("invalid day accepted")
	}
	// empty day falls back to the active partition
	if _, err := d.Records(""); err != nil {
		t.Errorf("empty day rejected: %v", err)
	}
}

func TestDaemonLockExcludesSecondInstance(t *testing.T) {
	d, _, cfg := testDaemon(t)
	if err := d.AcquireLock(); err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}
	defer d.ReleaseLock()

	logger := logging.NewNop()
	registry := ledger.NewRegistry(cfg.Capture.SaveDir, logger)
	resolver := review.NewResolver(logger, nil)
	dispatcher := review.NewDispatcher(resolver, review.Deferring{}, logger)
	scheduler := monitor.New(cfg, "2026-08-31", registry, staticSource{}, dispatcher, nil, logger)
	second, err := New(cfg, registry, scheduler, dispatcher, resolver, nil, logger)
	if err != nil {
		t.Fatal(err)
	}
	if err := second.AcquireLock(); err == nil {
		second.ReleaseLock()
		t.Fatal("second daemon acquired the lock")
	}
}

func TestDaemonSetDayOpensPartition(t *testing.T) {
	d, registry, _ := testDaemon(t)
	if err := d.SetDay("2026-09-01"); err != nil {
		t.Fatalf("SetDay: %v", err)
	}
	path := filepath.Join(registry.Root(), "2026-09-01", ledger.FileName)
	if _, err := os.Stat(path); err != nil {
		t.Errorf("partition not created: %v", err)
	}
	if err := d.SetDay("next tuesday"); err == nil {
		t.Error("invalid day accepted")
	}
}
