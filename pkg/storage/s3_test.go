package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestObjectKey_ScopedToOwner(t *testing.T) {
	now := time.Now()
	key := ObjectKey("u1", now)

	require.True(t, strings.HasPrefix(key, "dreams/u1/"), "key=%q", key)
	require.True(t, strings.HasSuffix(key, ".png"), "key=%q", key)
}

func TestObjectKey_UniquePerCall(t *testing.T) {
	now := time.Now()

	require.NotEqual(t, ObjectKey("u1", now), ObjectKey("u1", now))
}
