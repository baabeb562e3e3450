package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactQR(t *testing.T) {
	png, err := ContactQR("(11) 91234-5678", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))

	_, err = ContactQR("1234", 128)
	assert.ErrorIs(t, err, ErrNoPhone)
}
