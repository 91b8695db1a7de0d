package models

type Tag struct {
	BaseModel
	Text      string `gorm:"size:60;not null" json:"text"`
	Url       string `gorm:"size:60;uniqueIndex;not null" json:"url"`
	CreatorID string `gorm:"type:uuid;index" json:"creator_id"`

	Creator *User  `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Posts   []Post `gorm:"many2many:post_tags" json:"-"`
}

func (Tag) TableName() string {
	return "tags"
}
