package file

import (
	"github.com/cardbay/goapi/base/ctx"
)

// WriterRepo stores a blob under path and returns a retrievable URL.
type WriterRepo interface {
	Store(ctx ctx.Ctx, path string, body []byte, contentType string) (string, error)
}

type Usecase interface {
	// UploadImage decodes a base64 data url, sniffs its content type and
	// stores it under name. Returns the public URL.
	UploadImage(ctx ctx.Ctx, imgData string, name string) (string, error)
}
