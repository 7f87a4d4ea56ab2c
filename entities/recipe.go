package entities

type Recipe struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Title        string `gorm:"size:128;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	Ingredients  string `gorm:"type:text" json:"ingredients"`
	Instructions string `gorm:"type:text" json:"instructions"`
	ImageURL     string `json:"image_url,omitempty"`
	CreatedBy    uint   `gorm:"not null;index" json:"created_by"`

	User *User `gorm:"foreignKey:CreatedBy" json:"-"`
	Timestamp
}
