package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dbehnke/ftx1chm/internal/cat"
	"github.com/dbehnke/ftx1chm/internal/memcsv"
)

// ReadSession is one scan of the radio's memory channels.
type ReadSession struct {
	ID           string     `gorm:"primarykey;size:36" json:"id"`
	RadioID      uint16     `json:"radio_id"`
	Model        string     `gorm:"size:20" json:"model"`
	Port         string     `gorm:"size:100" json:"port"`
	FirstChannel uint16     `json:"first_channel"`
	LastChannel  uint16     `json:"last_channel"`
	ChannelCount int        `json:"channel_count"`
	StartedAt    time.Time  `gorm:"index" json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at"`
}

// TableName specifies the table name for GORM
func (ReadSession) TableName() string {
	return "read_sessions"
}

// BeforeCreate assigns a random id to new sessions.
func (s *ReadSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now()
	}
	if s.Model == "" {
		s.Model = cat.ModelName(s.RadioID)
	}
	return nil
}

// Finished reports whether the scan ran to completion.
func (s ReadSession) Finished() bool {
	return s.FinishedAt != nil
}

func (s ReadSession) String() string {
	state := "incomplete"
	if s.Finished() {
		state = fmt.Sprintf("%d channels", s.ChannelCount)
	}
	return fmt.Sprintf("%s %s %s (%04d) on %s, channels %d-%d: %s",
		s.ID, s.StartedAt.Format(time.RFC3339), s.Model, s.RadioID, s.Port,
		s.FirstChannel, s.LastChannel, state)
}

// ChannelSnapshot is one memory channel as read during a session.
// Enumerated fields hold the same display names as the CSV file.
type ChannelSnapshot struct {
	ID          uint   `gorm:"primarykey" json:"-"`
	SessionID   string `gorm:"index;size:36;not null" json:"session_id"`
	Channel     string `gorm:"size:5;not null" json:"channel"`
	FrequencyHz uint32 `json:"frequency_hz"`
	Tag         string `gorm:"size:12" json:"tag"`
	Mode        string `gorm:"size:12" json:"mode"`
	ChannelType string `gorm:"size:20" json:"channel_type"`
	Squelch     string `gorm:"size:20" json:"squelch"`
	Shift       string `gorm:"size:20" json:"shift"`
	ClarifierHz int16  `json:"clarifier_hz"`
	RxClarifier string `gorm:"size:3" json:"rx_clarifier"`
	TxClarifier string `gorm:"size:3" json:"tx_clarifier"`
}

// TableName specifies the table name for GORM
func (ChannelSnapshot) TableName() string {
	return "channel_snapshots"
}

// NewChannelSnapshot copies a CSV record into a snapshot row.
func NewChannelSnapshot(r memcsv.Record) ChannelSnapshot {
	return ChannelSnapshot{
		Channel:     r.Channel,
		FrequencyHz: r.Frequency,
		Tag:         r.Tag,
		Mode:        r.Mode,
		ChannelType: r.ChannelType,
		Squelch:     r.Squelch,
		Shift:       r.Shift,
		ClarifierHz: r.Clarifier,
		RxClarifier: r.RxClarifier,
		TxClarifier: r.TxClarifier,
	}
}

// Record converts the snapshot back into a CSV record.
func (c ChannelSnapshot) Record() memcsv.Record {
	return memcsv.Record{
		Channel:     c.Channel,
		Frequency:   c.FrequencyHz,
		Tag:         c.Tag,
		Mode:        c.Mode,
		ChannelType: c.ChannelType,
		Squelch:     c.Squelch,
		Shift:       c.Shift,
		Clarifier:   c.ClarifierHz,
		RxClarifier: c.RxClarifier,
		TxClarifier: c.TxClarifier,
	}
}

// IsValid checks the fields the database requires
func (c ChannelSnapshot) IsValid() bool {
	return c.SessionID != "" && len(c.Channel) == cat.ChannelWidth
}
