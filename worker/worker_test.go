package worker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTickSkipsWhileRunning(t *testing.T) {
	started := make(chan struct{})
	finish := make(chan struct{})

	var runs int32
	job := &BaseJob{
		OnWork: func() error {
			runs++
			close(started)
			<-finish
			return nil
		},
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		job.Tick()
	}()

	<-started

	// overlapping ticks return without invoking the work
	job.Tick()
	job.Tick()

	close(finish)
	wg.Wait()

	assert.Equal(t, int32(1), runs)
}

func TestTickRunsAgainAfterCompletion(t *testing.T) {
	var runs int
	job := &BaseJob{
		OnWork: func() error {
			runs++
			return nil
		},
	}

	job.Tick()
	job.Tick()

	assert.Equal(t, 2, runs)
}
