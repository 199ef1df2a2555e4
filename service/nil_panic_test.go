package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilPanic(t *testing.T) {
	var nilMap map[string]int
	var nilFunc func()
	var nilIface error

	assert.PanicsWithValue(t, "map", func() { NilPanic(nilMap, "map") })
	assert.PanicsWithValue(t, "func", func() { NilPanic(nilFunc, "func") })
	assert.PanicsWithValue(t, "iface", func() { NilPanic(nilIface, "iface") })

	m := map[string]int{"a": 1}
	assert.Equal(t, m, NilPanic(m, "unused"))
	assert.Equal(t, 0, NilPanic(0, "zero value of a non-nillable type is fine"))
}

func TestStrPanic(t *testing.T) {
	assert.PanicsWithValue(t, "empty", func() { StrPanic("", "empty") })
	assert.Equal(t, "x", StrPanic("x", "unused"))
}
