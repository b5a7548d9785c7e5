package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/dbehnke/ftx1chm/internal/cat"
	"github.com/dbehnke/ftx1chm/internal/database"
	"github.com/dbehnke/ftx1chm/internal/memcsv"
	"github.com/dbehnke/ftx1chm/internal/progress"
	"github.com/dbehnke/ftx1chm/internal/radio"
)

const sessionListLimit = 20

// readRadio scans the configured channel range into the CSV file and, when
// the database is enabled, into a new read session.
func (a *App) readRadio(ctx context.Context) error {
	r, link, err := a.openRadio()
	if err != nil {
		return err
	}
	defer link.Close()

	id, err := r.Identify()
	var mismatch *cat.IDMismatchError
	switch {
	case errors.As(err, &mismatch):
		log.Printf("Warning: %v (%s), continuing", err, cat.ModelName(id))
	case err != nil:
		return fmt.Errorf("radio did not identify: %w", err)
	default:
		log.Printf("Found %s on %s", cat.ModelName(id), link.Name())
	}

	db, err := a.openDatabase()
	if err != nil {
		log.Printf("Failed to initialize database: %v", err)
		log.Printf("Continuing without session history...")
		db = nil
	}
	var repo *database.SnapshotRepository
	var session *database.ReadSession
	if db != nil {
		defer db.Close()
		repo = database.NewSnapshotRepository(db.GetDB())
		session = &database.ReadSession{
			RadioID:      id,
			Port:         link.Name(),
			FirstChannel: a.config.GetFirstChannel(),
			LastChannel:  a.config.GetLastChannel(),
		}
		if err := repo.CreateSession(session); err != nil {
			log.Printf("Failed to record session: %v", err)
			repo = nil
		}
	}

	bar := progress.New(os.Stderr, "Reading")
	channels, readErr := r.ReadChannels(ctx, a.config.GetFirstChannel(), a.config.GetLastChannel(), bar.Update)
	bar.Finish()
	if readErr != nil {
		if len(channels) == 0 {
			return readErr
		}
		log.Printf("Read stopped early: %v", readErr)
	}

	records := make([]memcsv.Record, 0, len(channels))
	for _, ch := range channels {
		records = append(records, memcsv.NewRecord(ch.Memory, ch.Tag))
	}

	size, err := writeCSV(a.config.GetFile(), records)
	if err != nil {
		return err
	}
	log.Printf("Wrote %s channels to %s (%s)",
		humanize.Comma(int64(len(records))), a.config.GetFile(), humanize.Bytes(uint64(size)))

	if repo != nil {
		a.saveSession(repo, session, records, readErr == nil)
	}
	return readErr
}

// saveSession stores the channels of a session. Only a complete scan
// marks the session finished.
func (a *App) saveSession(repo *database.SnapshotRepository, session *database.ReadSession, records []memcsv.Record, complete bool) {
	snapshots := make([]database.ChannelSnapshot, 0, len(records))
	for _, rec := range records {
		snapshots = append(snapshots, database.NewChannelSnapshot(rec))
	}
	if err := repo.SaveChannels(session.ID, snapshots); err != nil {
		log.Printf("Failed to save channels to database: %v", err)
		return
	}
	if !complete {
		log.Printf("Session %s left incomplete", session.ID)
		return
	}
	if err := repo.FinishSession(session.ID, len(snapshots)); err != nil {
		log.Printf("Failed to finish session: %v", err)
		return
	}
	log.Printf("Saved session %s", session.ID)
}

// writeRadio programs every record of the CSV file into the radio.
func (a *App) writeRadio(ctx context.Context) error {
	channels, err := loadChannels(a.config.GetFile())
	if err != nil {
		return err
	}
	if len(channels) == 0 {
		log.Printf("No channels in %s", a.config.GetFile())
		return nil
	}

	r, link, err := a.openRadio()
	if err != nil {
		return err
	}
	defer link.Close()

	if id, err := r.Identify(); err != nil {
		// refuse to program a radio we cannot positively identify
		return fmt.Errorf("radio check failed (%s): %w", cat.ModelName(id), err)
	}

	bar := progress.New(os.Stderr, "Writing")
	n, err := r.WriteChannels(ctx, channels, bar.Update)
	bar.Finish()
	if err != nil {
		return fmt.Errorf("wrote %d of %d channels: %w", n, len(channels), err)
	}
	return nil
}

// checkData validates the CSV file and prints the summary. It reports
// whether every record is valid.
func (a *App) checkData() (bool, error) {
	f, err := os.Open(a.config.GetFile())
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", a.config.GetFile(), err)
	}
	defer f.Close()

	summary, err := memcsv.Check(f)
	if err != nil {
		return false, err
	}
	summary.Print(os.Stdout)
	return summary.OK(), nil
}

func (a *App) withRepository(fn func(*database.SnapshotRepository) error) error {
	if !a.config.GetDatabaseEnabled() {
		return fmt.Errorf("database is disabled (set Enabled=1 in [Database])")
	}
	db, err := a.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(database.NewSnapshotRepository(db.GetDB()))
}

func (a *App) listSessions() error {
	return a.withRepository(func(repo *database.SnapshotRepository) error {
		sessions, err := repo.Sessions(sessionListLimit)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions stored")
			return nil
		}
		for _, s := range sessions {
			fmt.Printf("%s (%s)\n", s, humanize.Time(s.StartedAt))
		}
		total, err := repo.Count()
		if err != nil {
			return err
		}
		if total > int64(len(sessions)) {
			fmt.Printf("Showing %d of %s sessions\n", len(sessions), humanize.Comma(total))
		}
		return nil
	})
}

// exportSession writes a stored session to the CSV file. id may be "latest".
func (a *App) exportSession(id string) error {
	return a.withRepository(func(repo *database.SnapshotRepository) error {
		var session *database.ReadSession
		var err error
		if id == "latest" {
			session, err = repo.LatestSession()
		} else {
			session, err = repo.GetSession(id)
		}
		if database.IsNotFound(err) {
			return fmt.Errorf("no session %q", id)
		}
		if err != nil {
			return err
		}

		snapshots, err := repo.Channels(session.ID)
		if err != nil {
			return err
		}
		records := make([]memcsv.Record, 0, len(snapshots))
		for _, s := range snapshots {
			records = append(records, s.Record())
		}

		size, err := writeCSV(a.config.GetFile(), records)
		if err != nil {
			return err
		}
		log.Printf("Exported session %s: %d channels to %s (%s)",
			session.ID, len(records), a.config.GetFile(), humanize.Bytes(uint64(size)))
		return nil
	})
}

// deleteSession removes a stored session and its channels.
func (a *App) deleteSession(id string) error {
	return a.withRepository(func(repo *database.SnapshotRepository) error {
		if err := repo.DeleteSession(id); err != nil {
			if database.IsNotFound(err) {
				return fmt.Errorf("no session %q", id)
			}
			return err
		}
		log.Printf("Deleted session %s", id)
		return nil
	})
}

// writeCSV replaces path with records and returns the file size.
func writeCSV(path string, records []memcsv.Record) (int64, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := memcsv.NewWriter(f)
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return 0, err
		}
	}
	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// loadChannels reads a CSV file into channels ready to write. Every
// invalid record is reported before anything is sent to the radio.
func loadChannels(path string) ([]radio.Channel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	records, err := memcsv.ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	channels := make([]radio.Channel, 0, len(records))
	var bad int
	for i, rec := range records {
		m, err := rec.MemoryRead()
		if err != nil {
			log.Printf("Record %d (channel %s) is invalid: %v", i+1, rec.Channel, err)
			bad++
			continue
		}
		channels = append(channels, radio.Channel{Memory: m, Tag: rec.Tag})
	}
	if bad > 0 {
		return nil, fmt.Errorf("%s has %d invalid records, run -check-data for details", path, bad)
	}
	return channels, nil
}
