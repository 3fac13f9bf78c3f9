package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

var waClient = &http.Client{Timeout: 10 * time.Second}

// SendWhatsApp posts one message to the configured WhatsApp gateway. The
// gateway contract is a JSON POST with the normalized +62 number; any
// non-2xx response counts as a failed delivery attempt.
func SendWhatsApp(to, message string) error {
	gatewayURL := os.Getenv("WA_GATEWAY_URL")
	if gatewayURL == "" {
		return fmt.Errorf("whatsapp gateway not configured (WA_GATEWAY_URL)")
	}

	body, err := json.Marshal(map[string]string{
		"phone":   to,
		"message": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, gatewayURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := os.Getenv("WA_GATEWAY_TOKEN"); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := waClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}
	return nil
}
