package models

// All lists every model handled by AutoMigrate
func All() []any {
	return []any{
		&Organization{},
		&Product{},
		&Skill{},
		&UserStory{},
	}
}
