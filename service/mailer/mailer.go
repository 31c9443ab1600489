package mailer

import (
	"errors"
	"net/http"
	"time"

	bCtx "github.com/cardbay/goapi/base/ctx"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
)

// Mail is a single outbound message.
type Mail struct {
	To       string            `json:"to"`
	Subject  string            `json:"subject"`
	Text     string            `json:"text"`
	Template string            `json:"template,omitempty"`
	Vars     map[string]string `json:"vars,omitempty"`
}

// Client sends transactional mail. Delivery is best effort; callers that
// can tolerate loss should log and drop the error.
type Client interface {
	Send(ctx bCtx.Ctx, mail *Mail) error
}

type ClientCfg struct {
	HttpClient  http.Client
	Timeout     time.Duration
	ApiEndpoint string
	Apikey      string
	Sender      string
}
