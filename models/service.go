package models

import (
	"gorm.io/gorm"
)

type Service struct {
	gorm.Model
	Name        string `json:"name"`
	Slug        string `json:"slug" gorm:"unique"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Active      bool   `json:"active" gorm:"default:true"`
}
