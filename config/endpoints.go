package config

import (
	"net/url"
	"os"
	"strings"
)

// DefaultAPIBase is the upstream organizations API used when no override is set.
const DefaultAPIBase = "https://stark.adamtech.dev/api/"

// APIBase returns the REST API base URL with a trailing slash ensured.
// Respects API_BASE_URL if provided.
func APIBase() string {
	base := strings.TrimSpace(os.Getenv("API_BASE_URL"))
	if base == "" {
		base = DefaultAPIBase
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

// WSBase derives the websocket base from WS_BASE_URL if provided.
// Otherwise converts the API base protocol to ws(s) and keeps only the host.
func WSBase() string {
	if ws := strings.TrimSpace(os.Getenv("WS_BASE_URL")); ws != "" {
		return ws
	}
	u, err := url.Parse(APIBase())
	if err != nil || u.Host == "" {
		return "wss://stark.adamtech.dev"
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return scheme + "://" + u.Host
}

// OrdersWSURL builds the upstream orders channel URL:
// <wsBase>/ws/orders/?phone_number=...&site=...
func OrdersWSURL(phone, site string) string {
	params := url.Values{}
	params.Set("phone_number", phone)
	if site != "" {
		params.Set("site", site)
	}
	return WSBase() + "/ws/orders/?" + params.Encode()
}
