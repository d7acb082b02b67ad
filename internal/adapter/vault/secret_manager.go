package vault

import (
	"fmt"

	"github.com/hashicorp/vault/api"
)

type SecretManager struct {
	client *api.Client
}

func NewSecretManager(address, token string) (*SecretManager, error) {
	config := api.DefaultConfig()
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, err
	}

	client.SetToken(token)

	return &SecretManager{client: client}, nil
}

// GetSessionSigningKey reads the HMAC key used to sign dashboard session
// tokens from secret/data/dashboard.
func (sm *SecretManager) GetSessionSigningKey() (string, error) {
	secret, err := sm.client.Logical().Read("secret/data/dashboard")
	if err != nil {
		return "", err
	}
	if secret == nil || secret.Data == nil {
		return "", fmt.Errorf("dashboard secret not found")
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("unexpected dashboard secret layout")
	}

	key, ok := data["session_signing_key"].(string)
	if !ok || key == "" {
		return "", fmt.Errorf("session_signing_key missing from dashboard secret")
	}
	return key, nil
}
