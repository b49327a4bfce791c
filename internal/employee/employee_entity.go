package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SalaryGrade struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code      string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_grade_code_step"`
	Step      int             `gorm:"not null;default:1;uniqueIndex:idx_grade_code_step"`
	BasePay   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SalaryGrade) TableName() string {
	return "salary_grades"
}

type Employee struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNo    string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	FirstName     string    `gorm:"type:varchar(100);not null"`
	LastName      string    `gorm:"type:varchar(100);not null"`
	Department    string    `gorm:"type:varchar(100);not null"`
	Position      string    `gorm:"type:varchar(100);not null"`
	SalaryGradeID uuid.UUID `gorm:"type:uuid;not null;index"`
	// PROTECT semantics: the grade row cannot be removed while referenced.
	SalaryGrade *SalaryGrade `gorm:"foreignKey:SalaryGradeID;references:ID;constraint:OnDelete:RESTRICT"`
	DateHired   *time.Time   `gorm:"type:date"`
	BankName    string       `gorm:"type:varchar(100)"`
	BankAccount string       `gorm:"type:varchar(50)"`
	Active      bool         `gorm:"not null;default:true;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) FullName() string {
	return e.LastName + ", " + e.FirstName
}
