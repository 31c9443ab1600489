package repository

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"testing"
	"time"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"

	bCtx "github.com/cardbay/goapi/base/ctx"
)

type cloudStorageTestSuite struct {
	suite.Suite
	client        *storage.Client
	bucketName    string
	bucketUrl     string
	testingImage  []byte
	testingFolder string
}

func (suite *cloudStorageTestSuite) SetupSuite() {
	ctx := bCtx.Background()
	client, err := storage.NewClient(ctx)
	suite.NoError(err)

	suite.client = client
	suite.bucketName = "cardbay-dev-media"
	suite.bucketUrl = "https://media.cardbay.dev"
	// 1x1 transparent png
	suite.testingImage = []byte{
		0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
		0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
		0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
		0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
		0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
	}
	suite.testingFolder = "testing"
}

func (suite *cloudStorageTestSuite) TearDownSuite() {
	ctx := bCtx.Background()
	query := &storage.Query{Prefix: suite.testingFolder}
	bucket := suite.client.Bucket(suite.bucketName)
	it := bucket.Objects(ctx, query)
	for {
		attr, err := it.Next()
		if err == iterator.Done {
			break
		}
		suite.NoError(err)
		err = bucket.Object(attr.Name).Delete(ctx)
		suite.NoError(err)
	}
	err := suite.client.Close()
	suite.NoError(err)
}

func TestCloudStorageWriterRepo(t *testing.T) {
	t.Skip("requires google cloud storage auth")
	suite.Run(t, new(cloudStorageTestSuite))
}

func (suite *cloudStorageTestSuite) Test_cloudStorageWriterRepo_Store() {
	req := require.New(suite.T())
	ctx := bCtx.Background()

	contentPath := fmt.Sprintf("%s/listings/front.png", suite.testingFolder)
	expectedUrl := fmt.Sprintf("%s/%s", suite.bucketUrl, contentPath)
	cs, err := NewCloudStorageWriterRepo(&CloudStorageWriterRepoCfg{
		Client:     suite.client,
		BucketName: suite.bucketName,
		Timeout:    10 * time.Second,
		Url:        suite.bucketUrl,
	})
	req.NoError(err)
	url, err := cs.Store(ctx, contentPath, suite.testingImage, "image/png")
	req.NoError(err)
	req.Equal(expectedUrl, url)

	body, err := httpGet(ctx, url)
	req.NoError(err)
	req.Equal(suite.testingImage, body)
}

func httpGet(ctx bCtx.Ctx, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, xerrors.Errorf("resp.StatusCode != 200")
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return body, nil
}
