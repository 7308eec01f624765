package bot

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreConsumeClears(t *testing.T) {
	store := NewSessionStore()
	store.Remember("s1", "a description", "SST")

	content, subject, ok := store.Consume("s1")
	require.True(t, ok)
	assert.Equal(t, "a description", content)
	assert.Equal(t, "SST", subject)

	_, _, ok = store.Consume("s1")
	assert.False(t, ok)
}

func TestSessionStoreRememberOverwrites(t *testing.T) {
	store := NewSessionStore()
	store.Remember("s1", "first", "A")
	store.Remember("s1", "second", "B")

	content, subject, ok := store.Consume("s1")
	require.True(t, ok)
	assert.Equal(t, "second", content)
	assert.Equal(t, "B", subject)
}

func TestSessionStoreClear(t *testing.T) {
	store := NewSessionStore()
	store.Remember("s1", "content", "A")
	store.Clear("s1")

	_, _, ok := store.Consume("s1")
	assert.False(t, ok)
}

func TestSessionStoreIsolation(t *testing.T) {
	store := NewSessionStore()
	store.Remember("alice", "alice's info", "A")
	store.Remember("bob", "bob's info", "B")

	content, _, ok := store.Consume("alice")
	require.True(t, ok)
	assert.Equal(t, "alice's info", content)

	content, _, ok = store.Consume("bob")
	require.True(t, ok)
	assert.Equal(t, "bob's info", content)
}

func TestSessionStoreConcurrentAccess(t *testing.T) {
	store := NewSessionStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("session-%d", n%5)
			store.Remember(id, "content", "subject")
			store.Consume(id)
			store.Clear(id)
		}(i)
	}
	wg.Wait()
}
