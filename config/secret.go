package config

import (
	"fmt"
	"strings"
)

// Secret is a reference to a secret value, e.g. "env:SUBSTRATE_MNEMONIC".
type Secret string

type SecretType string

var Env SecretType = "env"
var Vault SecretType = "vault"
var Raw SecretType = "raw"
var File SecretType = "file"

func (s Secret) Load() (string, error) {
	return GetSecret(string(s))
}
func (s Secret) LoadOrBlank() string {
	deref, _ := GetSecret(string(s))
	return deref
}

func NewRawSecret(secret string) Secret {
	return Secret(fmt.Sprintf("raw:%s", secret))
}

func HasTypePrefix(secretRef string) bool {
	switch SecretType(strings.Split(secretRef, ":")[0]) {
	case Env, Vault, Raw, File:
		return true
	}
	return false
}
