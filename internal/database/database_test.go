package database

import (
	"bytes"
	"log"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dbehnke/ftx1chm/internal/cat"
	"github.com/dbehnke/ftx1chm/internal/memcsv"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(Config{Path: filepath.Join(t.TempDir(), "data", "test.db")}, nil)
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testSnapshots() []ChannelSnapshot {
	return []ChannelSnapshot{
		NewChannelSnapshot(memcsv.Record{
			Channel: "00002", Frequency: 145_500_000, Tag: "RPT", Mode: "FM",
			ChannelType: "Memory", Squelch: "CTCSS_ENCDEC", Shift: "MINUS SHIFT",
			Clarifier: -150, RxClarifier: "ON", TxClarifier: "OFF",
		}),
		NewChannelSnapshot(memcsv.Record{
			Channel: "00001", Frequency: 7_000_000, Mode: "LSB",
			ChannelType: "Memory", Squelch: "CTCSS_OFF", Shift: "SIMPLEX",
			RxClarifier: "OFF", TxClarifier: "OFF",
		}),
	}
}

func TestNewDB(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "nested", "dir", "snapshots.db")
	db, err := NewDB(Config{Path: path}, log.New(&buf, "", 0))
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	defer db.Close()

	if err := db.Health(); err != nil {
		t.Errorf("Health() error = %v", err)
	}
	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}
	if !strings.Contains(buf.String(), "Database initialized") {
		t.Errorf("log = %q", buf.String())
	}
	if !db.GetDB().Migrator().HasTable(&ReadSession{}) || !db.GetDB().Migrator().HasTable(&ChannelSnapshot{}) {
		t.Error("tables were not migrated")
	}
}

func TestSessionLifecycle(t *testing.T) {
	repo := NewSnapshotRepository(newTestDB(t).GetDB())

	session := &ReadSession{RadioID: cat.FTX1ID, Port: "/dev/ttyUSB0", FirstChannel: 1, LastChannel: 100}
	if err := repo.CreateSession(session); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if len(session.ID) != 36 {
		t.Errorf("session.ID = %q, want a UUID", session.ID)
	}
	if session.Model != "FTX-1" {
		t.Errorf("session.Model = %q, want FTX-1", session.Model)
	}
	if session.StartedAt.IsZero() {
		t.Error("session.StartedAt not set")
	}

	// Unfinished sessions are not "latest".
	if _, err := repo.LatestSession(); !IsNotFound(err) {
		t.Errorf("LatestSession() error = %v, want not found", err)
	}

	if err := repo.SaveChannels(session.ID, testSnapshots()); err != nil {
		t.Fatalf("SaveChannels() error = %v", err)
	}
	if err := repo.FinishSession(session.ID, 2); err != nil {
		t.Fatalf("FinishSession() error = %v", err)
	}

	latest, err := repo.LatestSession()
	if err != nil {
		t.Fatalf("LatestSession() error = %v", err)
	}
	if latest.ID != session.ID || latest.ChannelCount != 2 || !latest.Finished() {
		t.Errorf("LatestSession() = %+v", latest)
	}
	if !strings.Contains(latest.String(), "2 channels") {
		t.Errorf("String() = %q", latest.String())
	}

	channels, err := repo.Channels(session.ID)
	if err != nil {
		t.Fatalf("Channels() error = %v", err)
	}
	if len(channels) != 2 {
		t.Fatalf("len(Channels()) = %d, want 2", len(channels))
	}
	if channels[0].Channel != "00001" || channels[1].Channel != "00002" {
		t.Errorf("Channels() order = %s, %s", channels[0].Channel, channels[1].Channel)
	}

	rec := channels[1].Record()
	if rec.Tag != "RPT" || rec.Clarifier != -150 || rec.Shift != "MINUS SHIFT" {
		t.Errorf("Record() = %+v", rec)
	}
	if _, err := rec.MemoryRead(); err != nil {
		t.Errorf("stored record no longer valid: %v", err)
	}
}

func TestFinishUnknownSession(t *testing.T) {
	repo := NewSnapshotRepository(newTestDB(t).GetDB())
	if err := repo.FinishSession("does-not-exist", 1); !IsNotFound(err) {
		t.Errorf("FinishSession() error = %v, want not found", err)
	}
	if err := repo.DeleteSession("does-not-exist"); !IsNotFound(err) {
		t.Errorf("DeleteSession() error = %v, want not found", err)
	}
	if _, err := repo.GetSession("does-not-exist"); !IsNotFound(err) {
		t.Errorf("GetSession() error = %v, want not found", err)
	}
}

func TestCreateSessionValidation(t *testing.T) {
	repo := NewSnapshotRepository(newTestDB(t).GetDB())
	if err := repo.CreateSession(nil); err == nil {
		t.Error("CreateSession(nil) expected error")
	}
	if err := repo.CreateSession(&ReadSession{FirstChannel: 10, LastChannel: 1}); err == nil {
		t.Error("CreateSession() expected error for reversed range")
	}
}

func TestSaveChannelsRejectsInvalid(t *testing.T) {
	repo := NewSnapshotRepository(newTestDB(t).GetDB())
	session := &ReadSession{FirstChannel: 1, LastChannel: 1}
	if err := repo.CreateSession(session); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	bad := []ChannelSnapshot{{Channel: "1"}}
	if err := repo.SaveChannels(session.ID, bad); err == nil {
		t.Error("SaveChannels() expected error for short channel")
	}
	if err := repo.SaveChannels(session.ID, nil); err != nil {
		t.Errorf("SaveChannels(nil) error = %v", err)
	}
}

func TestSessionsAndDelete(t *testing.T) {
	repo := NewSnapshotRepository(newTestDB(t).GetDB())

	base := time.Now().Add(-time.Hour)
	var ids []string
	for i := 0; i < 3; i++ {
		s := &ReadSession{RadioID: cat.FTX1ID, FirstChannel: 1, LastChannel: 2, StartedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := repo.CreateSession(s); err != nil {
			t.Fatalf("CreateSession() error = %v", err)
		}
		if err := repo.SaveChannels(s.ID, testSnapshots()); err != nil {
			t.Fatalf("SaveChannels() error = %v", err)
		}
		ids = append(ids, s.ID)
	}

	sessions, err := repo.Sessions(2)
	if err != nil {
		t.Fatalf("Sessions() error = %v", err)
	}
	if len(sessions) != 2 || sessions[0].ID != ids[2] || sessions[1].ID != ids[1] {
		t.Errorf("Sessions(2) returned %d sessions, want newest two", len(sessions))
	}

	if err := repo.DeleteSession(ids[0]); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	count, err := repo.Count()
	if err != nil || count != 2 {
		t.Errorf("Count() = %d, %v; want 2", count, err)
	}
	channels, err := repo.Channels(ids[0])
	if err != nil || len(channels) != 0 {
		t.Errorf("Channels() of deleted session = %d, %v", len(channels), err)
	}
	channels, err = repo.Channels(ids[1])
	if err != nil || len(channels) != 2 {
		t.Errorf("Channels() of kept session = %d, %v", len(channels), err)
	}
}
