package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const MaxLanguagePairs = 4

// LanguagePairs: preferensi pasangan bahasa worker (mis. "en-hi").
// Di Postgres disimpan sebagai text[] lewat pq.StringArray.
type LanguagePairs []string

func (p LanguagePairs) Value() (driver.Value, error) {
	return pq.StringArray(p).Value()
}

func (p *LanguagePairs) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*p = LanguagePairs(arr)
	return nil
}

// GormDataType wajib ada: tanpa ini gorm membaca []string sebagai relasi.
func (LanguagePairs) GormDataType() string {
	return "text"
}

func (LanguagePairs) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// UserModel merepresentasikan tabel users (worker)
type UserModel struct {
	ID            uuid.UUID     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserName      string        `gorm:"column:user_name;size:50;not null;uniqueIndex:uq_users_user_name" json:"user_name"`
	Password      string        `gorm:"column:password;not null" json:"-"`
	Role          string        `gorm:"column:role;type:varchar(20);not null;index:idx_users_role" json:"role"`
	LanguagePairs LanguagePairs `gorm:"column:language_pairs" json:"language_pairs"`
	IsActive      bool          `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt     time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
