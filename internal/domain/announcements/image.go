package announcements

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"pet-lost-found/internal/platform/apperr"
)

const DefaultMaxImageBytes = 5 << 20

// ImagePayload es la unión de las dos formas en que llega una imagen:
// multipart (FileUpload) o JSON base64 (Base64Payload). Ambas convergen en Image.
type ImagePayload interface {
	isImagePayload()
}

type FileUpload struct {
	Data        []byte
	ContentType string
}

type Base64Payload struct {
	// Puede venir con prefijo "data:<mime>;base64,".
	Data     string
	MimeType string
}

func (FileUpload) isImagePayload()    {}
func (Base64Payload) isImagePayload() {}

var errInvalidImage = apperr.Validation("invalid image")

// normalizeImage devuelve nil, nil cuando no hay imagen.
func normalizeImage(p ImagePayload, maxBytes int) (*Image, error) {
	switch v := p.(type) {
	case nil:
		return nil, nil

	case FileUpload:
		if len(v.Data) == 0 {
			return nil, nil
		}
		mt := v.ContentType
		if strings.TrimSpace(mt) == "" || mt == "application/octet-stream" {
			mt = http.DetectContentType(v.Data)
		}
		return buildImage(v.Data, mt, maxBytes)

	case Base64Payload:
		data := strings.TrimSpace(v.Data)
		if data == "" {
			return nil, nil
		}
		mt := v.MimeType
		if rest, ok := strings.CutPrefix(data, "data:"); ok {
			header, payload, found := strings.Cut(rest, ",")
			if !found || !strings.HasSuffix(header, ";base64") {
				return nil, errInvalidImage
			}
			if strings.TrimSpace(mt) == "" {
				mt = strings.TrimSuffix(header, ";base64")
			}
			data = payload
		}
		if base64.StdEncoding.DecodedLen(len(data)) > maxBytes+3 {
			return nil, tooLarge(maxBytes)
		}
		raw, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, errInvalidImage
		}
		return buildImage(raw, mt, maxBytes)

	default:
		return nil, errInvalidImage
	}
}

func buildImage(data []byte, mimeType string, maxBytes int) (*Image, error) {
	if len(data) == 0 {
		return nil, errInvalidImage
	}
	if len(data) > maxBytes {
		return nil, tooLarge(maxBytes)
	}

	mt, _, err := mime.ParseMediaType(strings.TrimSpace(mimeType))
	if err != nil || !strings.HasPrefix(mt, "image/") {
		return nil, errInvalidImage
	}
	return &Image{Data: data, MimeType: mt}, nil
}

func tooLarge(maxBytes int) error {
	return apperr.Validation(fmt.Sprintf("image exceeds %d bytes", maxBytes))
}
