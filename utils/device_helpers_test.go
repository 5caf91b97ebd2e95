package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDevice(t *testing.T) {
	for _, props := range []string{"", "none", " NONE "} {
		dev, err := CreateDevice(props)
		assert.NoError(t, err)
		assert.Nil(t, dev, "props %q", props)
	}

	dev, err := CreateDevice(`{"mode": "Serial"}`)
	require.NoError(t, err)
	require.NotNil(t, dev)
	assert.Equal(t, "Serial", dev.Mode())
	dev.Free()
}
