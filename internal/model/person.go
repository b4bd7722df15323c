package model

import "time"

// Gender codes
const (
	GenderMale   = "M"
	GenderFemale = "F"
)

// Person is a shipyard employee. Credentials and sessions live in the external
// identity provider; this record only carries directory data and role links.
type Person struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(50);not null" json:"name"`
	EmployeeID string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"employee_id"`
	Department string    `gorm:"type:varchar(100);not null" json:"department"`
	Position   string    `gorm:"type:varchar(100);not null" json:"position"`
	Gender     string    `gorm:"type:varchar(1);not null" json:"gender"`
	Phone      string    `gorm:"type:varchar(20)" json:"phone"`
	Email      string    `gorm:"type:varchar(255)" json:"email"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PersonRole links a person to one of their roles
type PersonRole struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PersonID  uint      `gorm:"not null;uniqueIndex:idx_person_role" json:"person_id"`
	Person    Person    `gorm:"foreignKey:PersonID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	RoleID    uint      `gorm:"not null;uniqueIndex:idx_person_role" json:"role_id"`
	Role      Role      `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
