// Package models contains data structures for the application's domain models.
package models

// Ingredient is catalog reference data. The (name, measurement_unit)
// pair is unique so "sugar / g" and "sugar / tbsp" are distinct rows.
type Ingredient struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"size:50;not null;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string `gorm:"size:20;not null;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}

// TableName specifies the table name for GORM
func (Ingredient) TableName() string {
	return "ingredients"
}

// Tag is catalog reference data used to label recipes.
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Color string `gorm:"size:20" json:"color"`
	Slug  string `gorm:"size:20;not null;uniqueIndex" json:"slug"`
}

// TableName specifies the table name for GORM
func (Tag) TableName() string {
	return "tags"
}
