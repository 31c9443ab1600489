package usecase

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bCtx "github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/domain"
)

// 1x1 transparent png
var pngBody = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

type stubWriter struct {
	path        string
	contentType string
}

func (w *stubWriter) Store(c bCtx.Ctx, path string, body []byte, contentType string) (string, error) {
	w.path = path
	w.contentType = contentType
	return "https://media.cardbay.dev/" + path, nil
}

func TestUploadImage(t *testing.T) {
	req := require.New(t)
	c := bCtx.Background()
	w := &stubWriter{}
	uc := New(w)

	data := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBody)
	url, err := uc.UploadImage(c, data, "listings/abc/front")
	req.NoError(err)
	req.Equal("https://media.cardbay.dev/listings/abc/front.png", url)
	req.Equal("listings/abc/front.png", w.path)
	req.Equal("image/png", w.contentType)
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	c := bCtx.Background()
	uc := New(&stubWriter{})

	// header claims png but the body is plain text
	data := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not an image"))
	_, err := uc.UploadImage(c, data, "listings/abc/front")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestUploadImageBadDataUrl(t *testing.T) {
	c := bCtx.Background()
	uc := New(&stubWriter{})

	for _, data := range []string{
		"",
		"plain garbage",
		"data:image/png?" + base64.StdEncoding.EncodeToString(pngBody),
		"data:image/png;base64,%%%%",
	} {
		_, err := uc.UploadImage(c, data, "listings/abc/front")
		assert.ErrorIs(t, err, domain.ErrBadParamInput, data)
	}
}
