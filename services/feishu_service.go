package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"feishu_card_server/models"
)

const (
	tenantAccessTokenURI = "/auth/v3/tenant_access_token/internal"
	sendMessageURI       = "/im/v1/messages"
)

// FeishuService talks to the Feishu open API. Stateless: every send acquires
// a fresh tenant access token (no caching or refresh handling).
type FeishuService struct {
	BaseURL    string
	HTTPClient *http.Client
}

// GetTenantAccessToken exchanges an app identity pair for a short-lived
// tenant access token
func (fs *FeishuService) GetTenantAccessToken(ctx context.Context, appID, appSecret string) (string, error) {
	payload := map[string]string{"app_id": appID, "app_secret": appSecret}

	var tokenRes models.TenantTokenResponse
	if err := fs.postJSON(ctx, fs.BaseURL+tenantAccessTokenURI, "", payload, &tokenRes); err != nil {
		return "", err
	}
	if tokenRes.Code != 0 {
		return "", fmt.Errorf("%w: failed to get token: %s", ErrUpstreamRejected, tokenRes.Msg)
	}
	if tokenRes.TenantAccessToken == "" {
		return "", fmt.Errorf("%w: tenant_access_token", ErrMalformedUpstreamResponse)
	}
	return tokenRes.TenantAccessToken, nil
}

// SendCard sends an interactive card to a chat and returns the platform's
// message id for it
func (fs *FeishuService) SendCard(ctx context.Context, appID, appSecret, chatID string, cardJSON json.RawMessage) (string, error) {
	token, err := fs.GetTenantAccessToken(ctx, appID, appSecret)
	if err != nil {
		return "", err
	}

	payload := map[string]string{
		"receive_id": chatID,
		"msg_type":   "interactive",
		"content":    string(cardJSON),
	}

	var sendRes models.SendMessageResponse
	url := fs.BaseURL + sendMessageURI + "?receive_id_type=chat_id"
	if err := fs.postJSON(ctx, url, token, payload, &sendRes); err != nil {
		return "", err
	}
	if sendRes.Code != 0 {
		return "", fmt.Errorf("%w: failed to send card: %s", ErrUpstreamRejected, sendRes.Msg)
	}
	if sendRes.Data.MessageID == "" {
		return "", fmt.Errorf("%w: message_id", ErrMalformedUpstreamResponse)
	}

	log.Printf("📨 Card sent, message_id: %s", sendRes.Data.MessageID)
	return sendRes.Data.MessageID, nil
}

func (fs *FeishuService) postJSON(ctx context.Context, url, token string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := fs.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedUpstreamResponse, err)
	}
	return nil
}
