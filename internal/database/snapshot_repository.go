package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SnapshotRepository provides database operations for read sessions
type SnapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new repository instance
func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// CreateSession stores a new, unfinished session and fills in its id.
func (r *SnapshotRepository) CreateSession(session *ReadSession) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}
	if session.FirstChannel > session.LastChannel {
		return fmt.Errorf("invalid channel range %d-%d", session.FirstChannel, session.LastChannel)
	}
	return r.db.Create(session).Error
}

// FinishSession marks a session complete with the number of channels read.
func (r *SnapshotRepository) FinishSession(id string, channelCount int) error {
	now := time.Now()
	result := r.db.Model(&ReadSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"finished_at":   now,
			"channel_count": channelCount,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("session %s: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// SaveChannels stores the channels of a session in a transaction
func (r *SnapshotRepository) SaveChannels(sessionID string, channels []ChannelSnapshot) error {
	if len(channels) == 0 {
		return nil
	}

	const batchSize = 100

	rows := make([]ChannelSnapshot, 0, len(channels))
	for _, ch := range channels {
		ch.ID = 0
		ch.SessionID = sessionID
		if !ch.IsValid() {
			return fmt.Errorf("invalid channel snapshot %q", ch.Channel)
		}
		rows = append(rows, ch)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(&rows, batchSize).Error; err != nil {
			return fmt.Errorf("failed to save channels of session %s: %w", sessionID, err)
		}
		return nil
	})
}

// GetSession finds a session by id
func (r *SnapshotRepository) GetSession(id string) (*ReadSession, error) {
	var session ReadSession
	err := r.db.Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// LatestSession returns the most recent finished session.
func (r *SnapshotRepository) LatestSession() (*ReadSession, error) {
	var session ReadSession
	err := r.db.Where("finished_at IS NOT NULL").
		Order("started_at DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Sessions returns the most recent sessions, newest first.
func (r *SnapshotRepository) Sessions(limit int) ([]ReadSession, error) {
	var sessions []ReadSession
	err := r.db.Order("started_at DESC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}

// Channels returns the channels of a session in channel order.
func (r *SnapshotRepository) Channels(sessionID string) ([]ChannelSnapshot, error) {
	var channels []ChannelSnapshot
	err := r.db.Where("session_id = ?", sessionID).
		Order("channel ASC").
		Find(&channels).Error
	return channels, err
}

// Count returns the number of stored sessions
func (r *SnapshotRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&ReadSession{}).Count(&count).Error
	return count, err
}

// DeleteSession removes a session and its channels.
func (r *SnapshotRepository) DeleteSession(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&ChannelSnapshot{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&ReadSession{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("session %s: %w", id, gorm.ErrRecordNotFound)
		}
		return nil
	})
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
