package utils

import (
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance whose request
// and response bodies are encoded with goccy/go-json.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().
//	    SetHeader("Accept", "application/json").
//	    Get("https://api.example.com/users")
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	return &HTTPClient{Client: client}
}
