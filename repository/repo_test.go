package repository

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelforge/constant"
	"reelforge/entities"
)

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore()

	store.Create(&entities.Job{ID: "a", Status: constant.JobStatusQueued})

	job, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", job.ID)
	assert.Equal(t, constant.JobStatusQueued, job.Status)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Create(&entities.Job{ID: "a", HookOptions: []string{"one"}})

	job, _ := store.Get("a")
	job.Status = constant.JobStatusFailed
	job.HookOptions[0] = "mutated"

	fresh, _ := store.Get("a")
	assert.NotEqual(t, constant.JobStatusFailed, fresh.Status)
	assert.Equal(t, "one", fresh.HookOptions[0])
}

func TestStore_Mutate(t *testing.T) {
	store := NewStore()
	store.Create(&entities.Job{ID: "a", Status: constant.JobStatusQueued})

	store.Mutate("a", func(j *entities.Job) {
		j.Status = constant.JobStatusProcessing
		j.Progress = 40
	})

	job, _ := store.Get("a")
	assert.Equal(t, constant.JobStatusProcessing, job.Status)
	assert.Equal(t, 40, job.Progress)

	// Mutating an unknown id is a no-op, not a panic.
	store.Mutate("missing", func(j *entities.Job) { j.Progress = 1 })
}

func TestStore_ConcurrentReadersAndWriter(t *testing.T) {
	store := NewStore()
	store.Create(&entities.Job{ID: "a"})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Mutate("a", func(j *entities.Job) { j.Progress++ })
		}()
		go func() {
			defer wg.Done()
			_, _ = store.Get("a")
		}()
	}
	wg.Wait()

	job, _ := store.Get("a")
	assert.Equal(t, 50, job.Progress)
}
