package sheets

import (
	"encoding/json"
	"strings"
)

// ServiceAccount holds a service-account key split across environment
// variables.
type ServiceAccount struct {
	Type          string
	ProjectID     string
	PrivateKeyID  string
	PrivateKey    string
	ClientEmail   string
	ClientID      string
	ClientCertURL string
}

// Complete reports whether enough is set to authenticate.
func (a ServiceAccount) Complete() bool {
	return a.PrivateKey != "" && a.ClientEmail != ""
}

// JSON assembles the key file Google's client libraries expect. Literal
// "\n" sequences in the private key become newlines.
func (a ServiceAccount) JSON() ([]byte, error) {
	typ := a.Type
	if typ == "" {
		typ = "service_account"
	}
	return json.Marshal(map[string]string{
		"type":                        typ,
		"project_id":                  a.ProjectID,
		"private_key_id":              a.PrivateKeyID,
		"private_key":                 strings.ReplaceAll(a.PrivateKey, `\n`, "\n"),
		"client_email":                a.ClientEmail,
		"client_id":                   a.ClientID,
		"auth_uri":                    "https://accounts.google.com/o/oauth2/auth",
		"token_uri":                   "https://oauth2.googleapis.com/token",
		"auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
		"client_x509_cert_url":        a.ClientCertURL,
	})
}
