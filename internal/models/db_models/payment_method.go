package db_models

type PaymentMethod struct {
	BaseModel
	MethodName    string `gorm:"size:80;not null"`
	AccountNumber string `gorm:"size:80;not null"`
	AccountName   string `gorm:"size:120"`
	Instructions  string `gorm:"type:text"`
	IsActive      bool   `gorm:"index"`
}
