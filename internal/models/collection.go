package models

type Collection struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"size:500" json:"description"`
	CreatorID   string `gorm:"type:uuid;not null;index" json:"creator_id"`
	// No column default here: gorm would skip the zero value false on
	// insert and the default would win, silently reopening the collection.
	// The service always sets the value explicitly.
	IsOpen bool `gorm:"not null" json:"is_open"`

	Creator *User  `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Posts   []Post `gorm:"many2many:collection_posts" json:"posts,omitempty"`
}

func (Collection) TableName() string {
	return "collections"
}
