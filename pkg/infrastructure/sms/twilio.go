package sms

import (
	"conditionalert/pkg/domain/model"
	"context"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"net/http"
	"net/url"
	"time"
)

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	// BaseURL redirects API calls to another host, e.g. a local mock.
	// Empty uses the Twilio API.
	BaseURL string
	Timeout time.Duration
}

type TwilioSender struct {
	client *twilio.RestClient
}

func NewTwilioSender(cfg TwilioConfig) (*TwilioSender, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.BaseURL != "" {
		base, err := url.Parse(cfg.BaseURL)
		if err != nil || base.Scheme == "" || base.Host == "" {
			return nil, errors.Errorf("invalid twilio base url %q", cfg.BaseURL)
		}
		httpClient.Transport = &rebaseTransport{base: base, next: http.DefaultTransport}
	}

	restClient := &twilioclient.Client{
		Credentials: twilioclient.NewCredentials(cfg.AccountSID, cfg.AuthToken),
		HTTPClient:  httpClient,
	}
	restClient.SetAccountSid(cfg.AccountSID)

	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{Client: restClient}),
	}, nil
}

// Send delivers msg through the Twilio Messages API. The SDK call takes no
// context; the HTTP client timeout bounds it instead.
func (s *TwilioSender) Send(_ context.Context, msg model.NotificationMessage) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(msg.Recipient)
	params.SetFrom(msg.Sender)
	params.SetBody(msg.Body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return errors.Wrap(err, "failed to send twilio message")
	}

	log.WithFields(log.Fields{
		"notificationID": msg.ID,
		"sid":            stringValue(resp.Sid),
	}).Info("sms accepted by twilio")
	return nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type rebaseTransport struct {
	base *url.URL
	next http.RoundTripper
}

func (t *rebaseTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = t.base.Scheme
	req.URL.Host = t.base.Host
	req.Host = t.base.Host
	return t.next.RoundTrip(req)
}
