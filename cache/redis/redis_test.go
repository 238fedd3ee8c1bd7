package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKey(t *testing.T) {
	key, err := NewKey(1, "dashboard:counts", "")
	assert.Nil(t, err)
	assert.NotNil(t, key)

	_, err = NewKey(0, "dashboard:counts", "")
	assert.Equal(t, ErrorInvalidProject, err)

	_, err = NewKey(1, "", "")
	assert.Equal(t, ErrorInvalidPrefix, err)
}

func TestKeyFormat(t *testing.T) {
	key, _ := NewKey(42, "leads:by_status", "new")
	s, err := key.Key()
	assert.Nil(t, err)
	assert.Equal(t, "leads:by_status:pid:42:new", s)

	bad := &Key{}
	_, err = bad.Key()
	assert.NotNil(t, err)
}
