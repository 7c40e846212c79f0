// Package registry provides a global registry of trivia categories.
// Categories register themselves in init() functions, allowing the platform
// to discover them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/trivia-duel/internal/core"
)

// ErrUnknownCategory is returned by Create for IDs nobody registered.
var ErrUnknownCategory = errors.New("registry: unknown category")

// Category is a source of questions for one trivia topic.
type Category interface {
	// ID returns a unique identifier (e.g., "math", "geography").
	// Used for CLI arguments, URLs and config overrides.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Description is a one-line summary for menus.
	Description() string

	// NewSource creates the question source for a single game.
	// Each game gets its own source so no-repeat tracking is per game.
	NewSource(seed int64) (core.QuestionSource, error)
}

// CategoryInfo contains metadata about a registered category.
type CategoryInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a category.
type Factory func() Category

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]CategoryInfo)
	mu        sync.RWMutex
)

// Register adds a category factory to the registry.
// Typically called from a category's init() function.
// Panics if a category with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: category %q already registered", id))
	}

	// Get metadata by creating a temporary instance
	c := f()
	if c.ID() != id {
		panic(fmt.Sprintf("registry: category %q reports id %q", id, c.ID()))
	}

	factories[id] = f
	infos[id] = CategoryInfo{ID: id, Title: c.Title(), Description: c.Description()}
}

// List returns information about all registered categories, sorted by ID.
func List() []CategoryInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]CategoryInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a category by its ID.
func Create(id string) (Category, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownCategory, id)
	}

	return f(), nil
}

// Exists checks if a category with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// unregister removes a category. Tests only.
func unregister(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(factories, id)
	delete(infos, id)
}
