package models

// Category is the model for the 'categories' table
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// CategoryInput is the body of POST and PUT /categories
type CategoryInput struct {
	Name string `json:"name" binding:"required"`
}

// Subcategory is the model for the 'subcategories' table
type Subcategory struct {
	ID         int64  `json:"id" db:"id"`
	CategoryID int64  `json:"category_id" db:"category_id"`
	Name       string `json:"name" db:"name"`
}

// CreateSubcategoryInput is the body of POST /subcategories
type CreateSubcategoryInput struct {
	CategoryID int64  `json:"category_id" binding:"required,gt=0"`
	Name       string `json:"name" binding:"required"`
}
