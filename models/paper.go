package models

import "time"

// Paper is an uploaded exam paper. ClaimedBy is nil while the paper is still
// available; once a maker claims it the field never goes back to nil for the
// lifetime of the paper (claims are only undone by deleting the paper).
type Paper struct {
	PaperID    uint      `gorm:"primaryKey;column:paper_id" json:"paper_id"`
	Name       string    `gorm:"column:name;unique" json:"name"`
	StoredPath string    `gorm:"column:stored_path" json:"-"`
	SourceURL  string    `gorm:"column:source_url" json:"source_url"`
	FileSize   int64     `gorm:"column:file_size" json:"file_size"`
	MimeType   string    `gorm:"column:mime_type" json:"mime_type"`
	UploadedBy uint      `gorm:"column:uploaded_by" json:"uploaded_by"`
	ClaimedBy  *uint     `gorm:"column:claimed_by;index" json:"claimed_by,omitempty"`
	CreateAt   time.Time `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdateAt   time.Time `gorm:"column:update_at;autoUpdateTime" json:"update_at"`

	// Relations
	Uploader *User `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
	Claimer  *User `gorm:"foreignKey:ClaimedBy" json:"claimer,omitempty"`
}

func (Paper) TableName() string {
	return "papers"
}
