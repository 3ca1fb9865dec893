package specification

import "gorm.io/gorm"

// WithContent keeps only processed documents (content written).
type WithContent struct{}

func (s WithContent) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("content IS NOT NULL")
}
