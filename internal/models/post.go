package models

import "time"

// Post represents a publication in the Chronicle application.
//
// A post is publicly visible only when pub_date has passed, the post itself
// is published, and its category exists and is published. AuthorID never
// changes after creation.
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:256;not null" json:"title"`
	Text        string     `gorm:"type:text;not null" json:"text"`
	PubDate     time.Time  `gorm:"not null;index" json:"pub_date"`
	AuthorID    uint       `gorm:"not null;index" json:"author_id"`
	Author      User       `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	LocationID  *uint      `gorm:"index" json:"location_id,omitempty"`
	Location    *Location  `gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL" json:"location,omitempty"`
	CategoryID  *uint      `gorm:"index" json:"category_id,omitempty"`
	Category    *Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	IsPublished bool       `gorm:"not null;default:true" json:"is_published"`
	// CommentCount is not persisted; computed at query time
	CommentCount int       `gorm:"->" json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
