package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("image/png"))
	assert.True(t, IsImage("image/jpeg"))
	assert.False(t, IsImage("video/mp4"))
	assert.False(t, IsImage("application/pdf"))
}

func TestIsVideo(t *testing.T) {
	assert.True(t, IsVideo("video/mp4"))
	assert.True(t, IsVideo("application/x-mpegURL"))
	assert.False(t, IsVideo("image/png"))
}

func TestValidateMimeType(t *testing.T) {
	pngHeader := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

	mimeType, err := ValidateMimeType(bytes.NewReader(pngHeader), []string{"image/"})
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)

	_, err = ValidateMimeType(bytes.NewReader(pngHeader), []string{"video/"})
	assert.Error(t, err)
}
