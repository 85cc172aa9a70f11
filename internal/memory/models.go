package memory

import (
	"time"

	"github.com/bromolabs/bromo-server/internal/persona"
)

// Fact is a durable, key-addressed statement about a device's user. Mode nil
// means the fact surfaces in both modes.
type Fact struct {
	ID         uint64             `gorm:"primaryKey;autoIncrement" json:"id"`
	DeviceID   string             `gorm:"type:varchar(64);not null;uniqueIndex:uniq_device_key,priority:1" json:"device_id"`
	Key        string             `gorm:"type:varchar(128);not null;uniqueIndex:uniq_device_key,priority:2" json:"key"`
	Value      string             `gorm:"type:text;not null" json:"value"`
	Mode       *string            `gorm:"type:varchar(8)" json:"mode"`
	Confidence persona.Confidence `gorm:"type:varchar(8);not null;default:low" json:"confidence"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

func (Fact) TableName() string { return "memories" }

// ChatRun is the best-effort audit row for one chat request, blocked or not.
type ChatRun struct {
	RunID        string    `gorm:"primaryKey;size:26" json:"run_id"`
	UserID       uint64    `gorm:"index" json:"-"`
	DeviceID     string    `gorm:"type:varchar(64);index" json:"device_id"`
	Mode         string    `gorm:"type:varchar(8);not null" json:"mode"`
	Pace         string    `gorm:"type:varchar(16);not null" json:"pace"`
	Model        string    `gorm:"type:varchar(64)" json:"model"`
	Temperature  float64   `json:"temperature"`
	PatchApplied bool      `json:"patch_applied"`
	Blocked      bool      `gorm:"index" json:"blocked"`
	BlockReason  string    `gorm:"type:varchar(40)" json:"block_reason"`
	UserText     string    `gorm:"type:text" json:"user_text"`
	ReplyText    string    `gorm:"type:text" json:"reply_text"`
	CreatedAt    time.Time `json:"created_at"`
}

func (ChatRun) TableName() string { return "chat_runs" }
