package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const smsRequestTimeout = 15 * time.Second

// ==============================================
// SMS SERVICE (HTTP gateway dispatch channel)
// ==============================================

// SMSService sends text messages through a JSON-over-HTTP SMS gateway.
// Like email, dispatch is single-shot: no retries, errors surface to the
// caller.
type SMSService struct {
	apiKey     string
	baseURL    string
	sender     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewSMSService(apiKey, baseURL, sender string, logger *zap.Logger) *SMSService {
	return &SMSService{
		apiKey:     apiKey,
		baseURL:    baseURL,
		sender:     sender,
		httpClient: &http.Client{Timeout: smsRequestTimeout},
		logger:     logger,
	}
}

// SendSMS posts a message to the gateway. The body carries a one-time code,
// so it is never logged.
func (s *SMSService) SendSMS(to, body string) error {
	if s.apiKey == "" || s.baseURL == "" {
		return errors.New("sms gateway not configured")
	}

	payload := map[string]string{
		"sender":  s.sender,
		"to":      to,
		"message": body,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sms gateway returned status %d: %s", resp.StatusCode, string(b))
	}

	s.logger.Debug("sms sent", zap.String("to", to))
	return nil
}
