package config

import (
	"errors"
	"os"
	"strings"

	vault "github.com/hashicorp/vault/api"
)

func newVaultClient(cfg *vault.Config) (VaultLoader, error) {
	cli, err := vault.NewClient(cfg)
	if err != nil {
		return &DefaultVaultLoader{}, err
	}
	return &DefaultVaultLoader{Client: cli}, nil
}

var NewVaultClient = newVaultClient

type DefaultVaultLoader struct {
	*vault.Client
}

var _ VaultLoader = &DefaultVaultLoader{}

func (v *DefaultVaultLoader) LoadSecretData(vaultPath string) (*vault.Secret, error) {
	secret, err := v.Logical().Read(vaultPath)
	if err != nil || secret == nil { // yes, secret can be nil
		return &vault.Secret{}, err
	}
	return secret, nil
}

type VaultLoader interface {
	LoadSecretData(path string) (*vault.Secret, error)
}

var errInvalidSource = errors.New("invalid secret source for: ***")

// GetSecret dereferences a secret reference: env:NAME, file:PATH, raw:VALUE,
// or vault:URL,PATH/KEY (with VAULT_TOKEN in the environment).
func GetSecret(uri string) (string, error) {
	kind, path, ok := strings.Cut(uri, ":")
	if !ok {
		return "", errInvalidSource
	}

	switch SecretType(kind) {
	case Env:
		return strings.TrimSpace(os.Getenv(path)), nil
	case Raw:
		return path, nil
	case File:
		if len(path) > 1 && path[0] == '~' {
			path = strings.Replace(path, "~", os.Getenv("HOME"), 1)
		}
		result, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(result)), nil
	case Vault:
		vaultArgs := strings.Split(path, ",")
		if len(vaultArgs) != 2 {
			return "", errors.New("vault secret has 2 comma separated arguments (url,path)")
		}
		vaultUrl := vaultArgs[0]
		vaultFullPath := vaultArgs[1]

		idx := strings.LastIndex(vaultFullPath, "/")
		if idx == -1 || idx == len(vaultFullPath)-1 {
			return "", errors.New("malformed vault secret in config file")
		}
		vaultKey := vaultFullPath[idx+1:]
		vaultPath := vaultFullPath[:idx]

		client, err := NewVaultClient(&vault.Config{Address: vaultUrl})
		if err != nil {
			return "", err
		}
		secret, err := client.LoadSecretData(vaultPath)
		if err != nil {
			return "", err
		}
		data, _ := secret.Data["data"].(map[string]interface{})
		result, _ := data[vaultKey].(string)
		return strings.TrimSpace(result), nil
	}
	return "", errInvalidSource
}
