package model

// User maps to the users table.
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;unique"              json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	IsAdmin      bool   `gorm:"not null;default:false"                         json:"is_admin"`
	VersionedModel
}

func (User) TableName() string { return "users" }
