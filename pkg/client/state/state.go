// Package state реализует клиентское состояние списка заметок в виде
// чистого редьюсера. События применяются только после подтверждения
// сервером, оптимистичных обновлений нет.
package state

import (
	"strings"
	"sync"

	"memopad/pkg/client"
)

// Event - событие, изменяющее список заметок.
type Event interface {
	isEvent()
}

// NotesLoaded заменяет весь список загруженными заметками.
type NotesLoaded struct {
	Notes []client.Note
}

// NoteCreated добавляет новую заметку в начало списка.
type NoteCreated struct {
	Note client.Note
}

// NoteReplaced заменяет заметку с тем же ID на месте.
type NoteReplaced struct {
	Note client.Note
}

// FavoriteToggled выставляет флаг избранного у заметки с данным ID.
type FavoriteToggled struct {
	NoteID     string
	IsFavorite bool
}

// NoteDeleted удаляет заметку с данным ID из списка.
type NoteDeleted struct {
	NoteID string
}

func (NotesLoaded) isEvent()     {}
func (NoteCreated) isEvent()     {}
func (NoteReplaced) isEvent()    {}
func (FavoriteToggled) isEvent() {}
func (NoteDeleted) isEvent()     {}

// Reduce применяет событие к списку заметок и возвращает новый список.
// Входной список не изменяется. Событие с неизвестным ID не меняет
// состояние.
func Reduce(notes []client.Note, event Event) []client.Note {
	switch e := event.(type) {
	case NotesLoaded:
		next := make([]client.Note, len(e.Notes))
		copy(next, e.Notes)
		return next

	case NoteCreated:
		next := make([]client.Note, 0, len(notes)+1)
		next = append(next, e.Note)
		next = append(next, notes...)
		return next

	case NoteReplaced:
		next := make([]client.Note, len(notes))
		copy(next, notes)
		for i := range next {
			if next[i].ID == e.Note.ID {
				next[i] = e.Note
			}
		}
		return next

	case FavoriteToggled:
		next := make([]client.Note, len(notes))
		copy(next, notes)
		for i := range next {
			if next[i].ID == e.NoteID {
				next[i].IsFavorite = e.IsFavorite
			}
		}
		return next

	case NoteDeleted:
		next := make([]client.Note, 0, len(notes))
		for _, note := range notes {
			if note.ID != e.NoteID {
				next = append(next, note)
			}
		}
		return next

	default:
		return notes
	}
}

// Search возвращает заметки, у которых заголовок или содержимое
// содержит запрос без учета регистра. Содержимое проверяется как
// хранится, разметка не вырезается. Пустой запрос возвращает все.
func Search(notes []client.Note, query string) []client.Note {
	if query == "" {
		return notes
	}

	q := strings.ToLower(query)
	matched := make([]client.Note, 0, len(notes))
	for _, note := range notes {
		if strings.Contains(strings.ToLower(note.Title), q) ||
			strings.Contains(strings.ToLower(note.Content), q) {
			matched = append(matched, note)
		}
	}
	return matched
}

// Partition разделяет заметки на закрепленные (избранные) и обычные с
// сохранением порядка.
func Partition(notes []client.Note) (pinned, regular []client.Note) {
	pinned = make([]client.Note, 0, len(notes))
	regular = make([]client.Note, 0, len(notes))
	for _, note := range notes {
		if note.IsFavorite {
			pinned = append(pinned, note)
		} else {
			regular = append(regular, note)
		}
	}
	return pinned, regular
}

// Store - потокобезопасная обертка над состоянием списка заметок.
type Store struct {
	mu    sync.RWMutex
	notes []client.Note
}

// NewStore создает пустое хранилище состояния.
func NewStore() *Store {
	return &Store{notes: make([]client.Note, 0)}
}

// Apply применяет событие к текущему состоянию.
func (s *Store) Apply(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = Reduce(s.notes, event)
}

// Notes возвращает копию текущего списка заметок.
func (s *Store) Notes() []client.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]client.Note, len(s.notes))
	copy(notes, s.notes)
	return notes
}

// Search фильтрует текущее состояние по запросу.
func (s *Store) Search(query string) []client.Note {
	return Search(s.Notes(), query)
}

// Partition возвращает закрепленные и обычные заметки, прошедшие
// фильтр поиска. Фильтрация выполняется до разделения.
func (s *Store) Partition(query string) (pinned, regular []client.Note) {
	return Partition(s.Search(query))
}
