package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	bCtx "github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/base/log"
	"github.com/cardbay/goapi/base/metrics"
)

const (
	authHeader        = "Authorization"
	idempotencyHeader = "Idempotency-Key"

	statusCaptured = "captured"
	statusDeclined = "declined"
)

type gateway struct {
	client   http.Client
	timeout  time.Duration
	endpoint string
	apikey   string
	met      metrics.Service
}

func NewGateway(cfg *GatewayCfg) Gateway {
	return &gateway{
		client:   cfg.HttpClient,
		timeout:  cfg.Timeout,
		endpoint: cfg.ApiEndpoint,
		apikey:   cfg.Apikey,
		met:      metrics.New("payment"),
	}
}

func (g *gateway) Charge(ctx bCtx.Ctx, payload *ChargePayload) (*ChargeResult, error) {
	defer g.met.BumpTime("charge.time").End()

	url := fmt.Sprintf("%s/v1/charges", g.endpoint)

	body, err := json.Marshal(payload)
	if err != nil {
		ctx.WithField("err", err).Error("json.Marshal failed")
		return nil, err
	}

	ctx, cancel := bCtx.WithTimeout(ctx, g.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(authHeader, "Bearer "+g.apikey)
	req.Header.Set(idempotencyHeader, payload.IdempotencyKey)

	resp, err := g.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusUnprocessableEntity {
		g.met.BumpSum("charge.declined", 1)
		return nil, ErrDeclined
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return nil, ErrStatusCodeNotOk
	}

	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		ctx.WithField("err", err).Error("failed to read body")
		return nil, err
	}

	res := &ChargeResult{}
	if err := json.Unmarshal(raw, res); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	if res.Status == statusDeclined {
		g.met.BumpSum("charge.declined", 1)
		return nil, ErrDeclined
	}

	g.met.BumpSum("charge.captured", 1)
	return res, nil
}
