package model

// Question is a trivia question.  CategoryID references categories.id and
// is stored in the `category` column; Difficulty ranges from 1 to 5.
// The JSON shape is the one served by the trivia API.
type Question struct {
    ID         uint64 `gorm:"primaryKey" json:"id"`
    Question   string `gorm:"not null" json:"question"`
    Answer     string `gorm:"not null" json:"answer"`
    CategoryID uint64 `gorm:"column:category;not null;index" json:"category"`
    Difficulty int    `gorm:"not null" json:"difficulty"`
}

func (Question) TableName() string { return "questions" }

// Category groups questions.  Type is the display label (e.g. "Science").
type Category struct {
    ID   uint64 `gorm:"primaryKey" json:"id"`
    Type string `gorm:"not null" json:"type"`
}

func (Category) TableName() string { return "categories" }
