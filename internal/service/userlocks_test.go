package service

import (
	"sync"
	"testing"
)

func TestUserLocksReleased(t *testing.T) {
	l := newUserLocks()

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.lock(42)
			counter++
			unlock()
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("counter = %d", counter)
	}
	if n := l.size(); n != 0 {
		t.Fatalf("%d locks left, want 0", n)
	}
}
