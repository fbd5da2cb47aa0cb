package models

// User is the identity record memberships and note authorship hang off.
// Authentication itself happens outside this service; we only need the row.
type User struct {
	BaseModel
	Email    string `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	FullName string `json:"full_name" gorm:"not null;size:200" validate:"required,max=200"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
