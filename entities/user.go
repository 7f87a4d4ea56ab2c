package entities

type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Username     string  `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Name         string  `gorm:"size:128" json:"name"`
	Phone        *string `gorm:"size:20" json:"phone,omitempty"`
	Email        *string `gorm:"size:120;uniqueIndex" json:"email,omitempty"`
	PasswordHash string  `gorm:"size:128" json:"-"`

	Recipes []Recipe `gorm:"foreignKey:CreatedBy" json:"-"`
	Timestamp
}
