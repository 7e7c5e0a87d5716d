package models

// Category is the fixed set of boards a post can belong to.
type Category string

const (
	CategoryGeneral       Category = "GENERAL"
	CategoryCollege       Category = "COLLEGE"
	CategoryEntrepreneurs Category = "ENTREPRENEURS"
	CategoryProfessionals Category = "PROFESSIONALS"
	CategoryLife          Category = "LIFE"
)

// Categories lists every valid category.
func Categories() []Category {
	return []Category{
		CategoryGeneral,
		CategoryCollege,
		CategoryEntrepreneurs,
		CategoryProfessionals,
		CategoryLife,
	}
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryCollege, CategoryEntrepreneurs, CategoryProfessionals, CategoryLife:
		return true
	}
	return false
}
