// Package todo keeps a small persistent task list next to the timer.
package todo

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"focusdeck/internal/storage"

	"github.com/google/uuid"
)

var (
	// ErrEmptyText rejects blank items.
	ErrEmptyText = errors.New("todo text is empty")
	// ErrNotFound means no item matched the id or prefix.
	ErrNotFound = errors.New("todo not found")
	// ErrAmbiguous means an id prefix matched more than one item.
	ErrAmbiguous = errors.New("todo id prefix is ambiguous")
)

// Item is one entry of the list.
type Item struct {
	ID        string    `yaml:"id"`
	Text      string    `yaml:"text"`
	Completed bool      `yaml:"completed,omitempty"`
	CreatedAt time.Time `yaml:"created_at"`
}

// ShortID returns the first block of the id for display.
func (item Item) ShortID() string {
	if short, _, ok := strings.Cut(item.ID, "-"); ok {
		return short
	}
	return item.ID
}

type record struct {
	Items []Item `yaml:"items"`
}

// List is the persisted to-do list. Items keep insertion order.
type List struct {
	mu    sync.Mutex
	store storage.Store
	now   func() time.Time
}

// NewList returns a list over store. A nil now uses time.Now.
func NewList(store storage.Store, now func() time.Time) *List {
	if now == nil {
		now = time.Now
	}
	return &List{store: store, now: now}
}

// Items returns all items. A corrupt record reads as an empty list and
// reports the error.
func (list *List) Items() ([]Item, error) {
	list.mu.Lock()
	defer list.mu.Unlock()
	return list.loadLocked()
}

// Add appends a new incomplete item.
func (list *List) Add(text string) (Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Item{}, ErrEmptyText
	}

	list.mu.Lock()
	defer list.mu.Unlock()
	items, err := list.loadLocked()
	if err != nil && !errors.Is(err, storage.ErrCorrupt) {
		return Item{}, err
	}
	item := Item{
		ID:        uuid.New().String(),
		Text:      text,
		CreatedAt: list.now().UTC(),
	}
	items = append(items, item)
	return item, list.saveLocked(items)
}

// Toggle flips the completed flag of the item matching idOrPrefix.
func (list *List) Toggle(idOrPrefix string) (Item, error) {
	list.mu.Lock()
	defer list.mu.Unlock()
	items, err := list.loadLocked()
	if err != nil {
		return Item{}, err
	}
	index, err := find(items, idOrPrefix)
	if err != nil {
		return Item{}, err
	}
	items[index].Completed = !items[index].Completed
	return items[index], list.saveLocked(items)
}

// Remove deletes the item matching idOrPrefix.
func (list *List) Remove(idOrPrefix string) (Item, error) {
	list.mu.Lock()
	defer list.mu.Unlock()
	items, err := list.loadLocked()
	if err != nil {
		return Item{}, err
	}
	index, err := find(items, idOrPrefix)
	if err != nil {
		return Item{}, err
	}
	removed := items[index]
	items = append(items[:index], items[index+1:]...)
	return removed, list.saveLocked(items)
}

// ClearCompleted removes every completed item and returns how many went.
func (list *List) ClearCompleted() (int, error) {
	list.mu.Lock()
	defer list.mu.Unlock()
	items, err := list.loadLocked()
	if err != nil {
		return 0, err
	}
	kept := items[:0]
	for _, item := range items {
		if !item.Completed {
			kept = append(kept, item)
		}
	}
	removed := len(items) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, list.saveLocked(kept)
}

func (list *List) loadLocked() ([]Item, error) {
	var stored record
	found, err := storage.LoadRecord(list.store, storage.KeyTodos, &stored)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return stored.Items, nil
}

func (list *List) saveLocked(items []Item) error {
	if err := storage.SaveRecord(list.store, storage.KeyTodos, record{Items: items}); err != nil {
		return fmt.Errorf("save todo list: %w", err)
	}
	return nil
}

func find(items []Item, idOrPrefix string) (int, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return -1, ErrNotFound
	}
	match := -1
	for index, item := range items {
		if item.ID == idOrPrefix {
			return index, nil
		}
		if strings.HasPrefix(item.ID, idOrPrefix) {
			if match >= 0 {
				return -1, fmt.Errorf("%w: %s", ErrAmbiguous, idOrPrefix)
			}
			match = index
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return match, nil
}
