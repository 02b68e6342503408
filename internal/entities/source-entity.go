package entities

import "strings"

// SourceConnectionError is shown when the list could not be fetched at all.
const SourceConnectionError = "ERROR DE CONEXIÓN"

// DataSource is the server-reported origin of the global inventory,
// resolved once into capabilities at decode time.
type DataSource struct {
	Label    string `json:"label"`
	Primary  bool   `json:"primary"`
	Fallback bool   `json:"fallback"`
}

// SourceResolver turns labels into DataSource values.
type SourceResolver struct {
	PrimaryMarker  string
	FallbackMarker string
}

func (r SourceResolver) Resolve(label string) DataSource {
	if label == "" {
		label = "Desconocido"
	}
	src := DataSource{Label: label}
	if r.PrimaryMarker != "" {
		src.Primary = strings.Contains(label, r.PrimaryMarker)
	}
	if r.FallbackMarker != "" {
		src.Fallback = strings.Contains(strings.ToUpper(label), strings.ToUpper(r.FallbackMarker))
	}
	return src
}

// ReadOnly reports whether mutating controls must be disabled.
func (s DataSource) ReadOnly() bool {
	return !s.Primary
}
