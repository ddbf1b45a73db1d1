package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
)

// SMSClient talks to the Mobizon SMS gateway. In dry-run mode (or with no
// API key) nothing leaves the process, which is what dev and tests use.
type SMSClient struct {
	APIKey string
	Sender string
	DryRun bool
}

type SendSMSResponse struct {
	Code int `json:"code"`
	Data struct {
		MessageID string `json:"messageId"`
	} `json:"data"`
}

func NewSMSClient(apiKey, sender string, dryRun bool) *SMSClient {
	return &SMSClient{APIKey: apiKey, Sender: sender, DryRun: dryRun}
}

func (c *SMSClient) SendSMS(to, text string) (*SendSMSResponse, error) {
	if c.DryRun || c.APIKey == "" {
		log.Printf("[sms][dry-run] to=%s sender=%q text=%q", to, c.Sender, text)
		return &SendSMSResponse{Code: 0}, nil
	}

	apiURL := "https://api.mobizon.kz/service/message/sendsmsmessage"

	form := url.Values{
		"apiKey":    {c.APIKey},
		"recipient": {to},
		"text":      {fmt.Sprintf("ParkEzy %s", text)},
	}
	if c.Sender != "" {
		form.Set("from", c.Sender)
	}

	resp, err := http.PostForm(apiURL, form)
	if err != nil {
		return nil, fmt.Errorf("send SMS request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var result SendSMSResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if result.Code != 0 {
		return nil, fmt.Errorf("mobizon returned error code: %d", result.Code)
	}
	return &result, nil
}
