package cache

import (
	"sync"

	"mergington.dev/activities/internal/model"
	"mergington.dev/activities/internal/pkg/cache"
)

type Flusher func() error

var (
	// Activities holds the full catalog in its canonical storage order. It is
	// flushed on every successful mutation so a read that follows a mutation
	// always observes it.
	Activities *cache.Singular[[]*model.Activity]

	once sync.Once

	SingularFlusherMap map[string]Flusher
)

func Initialize() {
	once.Do(initializeCaches)
}

func Delete(name string) error {
	if flush, ok := SingularFlusherMap[name]; ok {
		return flush()
	}
	return nil
}

func initializeCaches() {
	SingularFlusherMap = make(map[string]Flusher)

	// activity
	Activities = cache.NewSingular[[]*model.Activity]("activities")

	SingularFlusherMap["activities"] = Activities.Delete
}
