package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	bCtx "github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/base/log"
)

type client struct {
	client   http.Client
	timeout  time.Duration
	endpoint string
	apikey   string
	sender   string
}

func NewClient(cfg *ClientCfg) Client {
	return &client{
		client:   cfg.HttpClient,
		timeout:  cfg.Timeout,
		endpoint: cfg.ApiEndpoint,
		apikey:   cfg.Apikey,
		sender:   cfg.Sender,
	}
}

func (c *client) Send(ctx bCtx.Ctx, mail *Mail) error {
	url := fmt.Sprintf("%s/v1/messages", c.endpoint)

	payload := struct {
		*Mail
		From string `json:"from"`
	}{mail, c.sender}

	body, err := json.Marshal(payload)
	if err != nil {
		ctx.WithField("err", err).Error("json.Marshal failed")
		return err
	}

	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apikey)

	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return ErrStatusCodeNotOk
	}
	return nil
}
