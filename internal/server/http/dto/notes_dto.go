package dto

// CreateNoteRequest содержит данные для создания заметки. Все поля
// необязательны, но хотя бы одно из title/content должно быть непустым.
type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Color   string `json:"color"`
}

// ReplaceNoteRequest содержит данные для полной замены заметки.
type ReplaceNoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// PatchNoteRequest содержит частичное обновление заметки. Указатели
// отличают "поле не передано" от нулевого значения: isFavorite=false
// применяется, отсутствующее поле — нет.
type PatchNoteRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Color      *string `json:"color"`
	IsFavorite *bool   `json:"isFavorite"`
}
