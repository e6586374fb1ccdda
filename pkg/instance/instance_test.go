package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetIDPrefersDyno(t *testing.T) {
	t.Setenv("DYNO", "web.1")
	t.Setenv("HOSTNAME", "box")
	assert.Equal(t, "web.1", GetID())
}

func TestGetIDFallsBack(t *testing.T) {
	t.Setenv("DYNO", "")
	t.Setenv("HOSTNAME", "box")
	assert.Equal(t, "box", GetID())

	t.Setenv("HOSTNAME", "")
	assert.Equal(t, "local", GetID())
}
