package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLifecycle(t *testing.T) {
	store := NewStore()

	assert.Nil(t, store.Get(1))

	req := store.Start(1, "Ivan")
	require.NotNil(t, req)
	assert.Equal(t, StateSocialNet, req.State)
	assert.Same(t, req, store.Get(1))

	store.Clear(1)
	assert.Nil(t, store.Get(1))
}

func TestStartDiscardsPreviousDraft(t *testing.T) {
	store := NewStore()

	old := store.Start(1, "Ivan")
	old.Phone = "+79991234567"
	old.State = StateEmail

	fresh := store.Start(1, "Ivan")
	assert.NotSame(t, old, fresh)
	assert.Empty(t, fresh.Phone)
	assert.Equal(t, StateSocialNet, fresh.State)
}

func TestUsersAreIndependent(t *testing.T) {
	store := NewStore()

	a := store.Start(1, "A")
	b := store.Start(2, "B")
	a.Link = "a-link"

	assert.Empty(t, b.Link)
	store.Clear(1)
	assert.Nil(t, store.Get(1))
	assert.Same(t, b, store.Get(2))
}
