package attendance

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceLog is one row per employee per calendar day. Time in/out are
// optional; a row can exist with just a remark (e.g. "on official leave").
type AttendanceLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_employee_date"`
	Date       time.Time  `gorm:"type:date;not null;uniqueIndex:idx_employee_date"`
	TimeIn     *time.Time `gorm:"type:timestamptz"`
	TimeOut    *time.Time `gorm:"type:timestamptz"`
	Remarks    string     `gorm:"type:varchar(255)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (AttendanceLog) TableName() string {
	return "attendance_logs"
}
