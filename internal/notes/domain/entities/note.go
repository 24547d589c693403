// Package entities defines the domain entities for the notes subsystem.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена заметок.
var (
	ErrNoteNotFound = errors.New("note not found")
)

// DefaultTitle - заголовок, подставляемый при создании заметки без заголовка.
// Значение продукта, сохранено как есть.
const DefaultTitle = "제목 없음"

// NoteColors - фиксированная палитра цветов заметок. Первый элемент
// используется по умолчанию. Значения — презентационные теги, клиенты
// трактуют их как CSS-классы.
var NoteColors = []string{
	"bg-yellow-100 border-yellow-200",
	"bg-pink-100 border-pink-200",
	"bg-blue-100 border-blue-200",
	"bg-green-100 border-green-200",
	"bg-purple-100 border-purple-200",
	"bg-orange-100 border-orange-200",
}

// DefaultColor возвращает цвет заметки по умолчанию.
func DefaultColor() string {
	return NoteColors[0]
}

// IsValidColor сообщает, входит ли цвет в палитру.
func IsValidColor(color string) bool {
	for _, c := range NoteColors {
		if c == color {
			return true
		}
	}
	return false
}

// Note представляет собой заметку пользователя. Content хранит разметку
// как есть; сервер не разбирает и не чистит её. CreatedAt и UserID
// неизменяемы после создания.
type Note struct {
	ID         string    `json:"id"`
	UserID     string    `json:"ownerId"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Color      string    `json:"color"`
	IsFavorite bool      `json:"isFavorite"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewNote создает новую заметку с применением значений по умолчанию:
// пустой заголовок заменяется на DefaultTitle, пустой цвет — на первый
// элемент палитры. Время создания назначает хранилище.
func NewNote(userID, title, content, color string) *Note {
	if title == "" {
		title = DefaultTitle
	}
	if color == "" {
		color = DefaultColor()
	}
	return &Note{
		UserID:  userID,
		Title:   title,
		Content: content,
		Color:   color,
	}
}
