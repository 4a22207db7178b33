// internal/sources/crtsh/models.go
package crtsh

// certRecord es una fila del JSON de crt.sh; solo se leen los campos usados.
type certRecord struct {
	IssuerName string `json:"issuer_name"`
	NameValue  string `json:"name_value"`
	NotBefore  string `json:"not_before"`
	NotAfter   string `json:"not_after"`
}
