package db_models

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type Account struct {
	BaseModel
	FullName     string `gorm:"size:120;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	WhatsApp     string `gorm:"column:whatsapp;size:32"`
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"type:varchar(16);index;not null"`

	Orders []Order `gorm:"foreignKey:AccountID"`
}
