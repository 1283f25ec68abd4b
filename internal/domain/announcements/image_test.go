package announcements

import (
	"encoding/base64"
	"strings"
	"testing"

	"pet-lost-found/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cabecera PNG mínima: suficiente para http.DetectContentType
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

func TestNormalizeImage_Nil(t *testing.T) {
	img, err := normalizeImage(nil, DefaultMaxImageBytes)
	require.NoError(t, err)
	assert.Nil(t, img)

	img, err = normalizeImage(Base64Payload{Data: "  "}, DefaultMaxImageBytes)
	require.NoError(t, err)
	assert.Nil(t, img)
}

func TestNormalizeImage_BothShapesConverge(t *testing.T) {
	b64 := base64.StdEncoding.EncodeToString(pngBytes)

	fromFile, err := normalizeImage(FileUpload{Data: pngBytes, ContentType: "image/png"}, DefaultMaxImageBytes)
	require.NoError(t, err)

	fromB64, err := normalizeImage(Base64Payload{Data: b64, MimeType: "image/png"}, DefaultMaxImageBytes)
	require.NoError(t, err)

	fromDataURI, err := normalizeImage(Base64Payload{Data: "data:image/png;base64," + b64}, DefaultMaxImageBytes)
	require.NoError(t, err)

	assert.Equal(t, fromFile, fromB64)
	assert.Equal(t, fromFile, fromDataURI)
}

func TestNormalizeImage_SniffsMissingContentType(t *testing.T) {
	img, err := normalizeImage(FileUpload{Data: pngBytes}, DefaultMaxImageBytes)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MimeType)

	img, err = normalizeImage(FileUpload{Data: pngBytes, ContentType: "application/octet-stream"}, DefaultMaxImageBytes)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MimeType)
}

func TestNormalizeImage_Rejects(t *testing.T) {
	tests := map[string]ImagePayload{
		"non image mime":       Base64Payload{Data: base64.StdEncoding.EncodeToString([]byte("hi")), MimeType: "text/plain"},
		"missing mime":         Base64Payload{Data: base64.StdEncoding.EncodeToString(pngBytes)},
		"bad base64":           Base64Payload{Data: "!!!not-base64!!!", MimeType: "image/png"},
		"data uri not base64":  Base64Payload{Data: "data:image/png,abc"},
		"sniffed as text":      FileUpload{Data: []byte("just some text")},
		"explicit non image":   FileUpload{Data: pngBytes, ContentType: "application/pdf"},
		"data uri without sep": Base64Payload{Data: "data:image/png;base64"},
	}
	for name, p := range tests {
		_, err := normalizeImage(p, DefaultMaxImageBytes)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation), name)
	}
}

func TestNormalizeImage_TooLarge(t *testing.T) {
	big := append(append([]byte{}, pngBytes...), make([]byte, 64)...)

	_, err := normalizeImage(FileUpload{Data: big, ContentType: "image/png"}, 32)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = normalizeImage(Base64Payload{Data: base64.StdEncoding.EncodeToString(big), MimeType: "image/png"}, 32)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestDataURI_RoundTrip(t *testing.T) {
	img := &Image{Data: pngBytes, MimeType: "image/png"}
	uri := img.DataURI()

	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, decoded)
}
