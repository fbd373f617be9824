package keylock_test

import (
	"sync"
	"testing"

	"warehouse/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	// Given
	km := keylock.NewKeyedMutex()
	const goroutines = 50
	counter := 0

	// When
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("warehouse-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	// Then
	assert.Equal(t, goroutines, counter)
}

func TestKeyedMutex_DifferentKeysDoNotBlock(t *testing.T) {
	// Given
	km := keylock.NewKeyedMutex()
	unlockA := km.Lock("warehouse-a")
	defer unlockA()

	done := make(chan struct{})

	// When: a different key must be acquirable while warehouse-a is held
	go func() {
		unlockB := km.Lock("warehouse-b")
		unlockB()
		close(done)
	}()

	// Then
	<-done
}

func TestKeyedMutex_Reentry(t *testing.T) {
	km := keylock.NewKeyedMutex()

	unlock := km.Lock("warehouse-1")
	unlock()

	// Re-acquiring after unlock must not deadlock.
	unlock = km.Lock("warehouse-1")
	unlock()
}
