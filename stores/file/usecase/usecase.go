package usecase

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/xerrors"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/file"
)

const (
	imgDataHeaderPrefix    = "data:image/"
	imgDataHeaderSuffix    = ";base64,"
	imgDataHeaderMaxLength = 50
)

type impl struct {
	writer file.WriterRepo
}

func New(writer file.WriterRepo) file.Usecase {
	return &impl{
		writer: writer,
	}
}

func (im *impl) UploadImage(c ctx.Ctx, imgData string, name string) (string, error) {
	body, err := parseImgData(imgData)
	if err != nil {
		c.WithField("err", err).Error("parseImgData failed")
		return "", fmt.Errorf("%w: %s", domain.ErrBadParamInput, err)
	}

	// trust the sniffed type over the data url header
	mtype := mimetype.Detect(body)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w: body is %s, not an image", domain.ErrBadParamInput, mtype.String())
	}

	path := name + mtype.Extension()
	url, err := im.writer.Store(c, path, body, mtype.String())
	if err != nil {
		c.WithField("err", err).Error("writer.Store failed")
		return "", err
	}
	return url, nil
}

func parseImgData(data string) ([]byte, error) {
	if !strings.HasPrefix(data, imgDataHeaderPrefix) {
		return nil, xerrors.Errorf("image data has wrong prefix")
	}
	// search header suffix in a limited range
	searchLength := imgDataHeaderMaxLength
	if len(data) < searchLength {
		searchLength = len(data)
	}
	headerSuffixIdx := strings.Index(data[:searchLength], imgDataHeaderSuffix)
	if headerSuffixIdx == -1 {
		return nil, xerrors.Errorf("can't find image data header suffix")
	}

	dataStartIdx := headerSuffixIdx + len(imgDataHeaderSuffix)
	return base64.StdEncoding.DecodeString(data[dataStartIdx:])
}
