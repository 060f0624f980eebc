package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	oauthCookieName = "astro_oauth"
	oauthCookiePath = "/api/v1/auth/google"
	oauthStateTTL   = 5 * time.Minute
)

// oauthFlow carries the PKCE state from GoogleLogin to GoogleCallback.
type oauthFlow struct {
	State    string `json:"s"`
	Verifier string `json:"v"`
	Expires  int64  `json:"e"`
}

// oauthStateCodec seals oauthFlow values as payload.mac so the callback only
// accepts cookies this server issued within oauthStateTTL.
type oauthStateCodec struct {
	key []byte
	now func() time.Time
}

func newOAuthStateCodec(secret string) *oauthStateCodec {
	sum := sha256.Sum256([]byte("oauth-state:" + secret))
	return &oauthStateCodec{key: sum[:], now: time.Now}
}

func (c *oauthStateCodec) seal(flow oauthFlow) (string, error) {
	flow.Expires = c.now().Add(oauthStateTTL).Unix()
	payload, err := json.Marshal(flow)
	if err != nil {
		return "", err
	}
	body := base64.RawURLEncoding.EncodeToString(payload)
	return body + "." + c.mac(body), nil
}

func (c *oauthStateCodec) open(value string) (oauthFlow, bool) {
	body, mac, found := strings.Cut(value, ".")
	if !found || !hmac.Equal([]byte(mac), []byte(c.mac(body))) {
		return oauthFlow{}, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return oauthFlow{}, false
	}
	var flow oauthFlow
	if err := json.Unmarshal(payload, &flow); err != nil {
		return oauthFlow{}, false
	}
	if flow.State == "" || flow.Verifier == "" || c.now().Unix() > flow.Expires {
		return oauthFlow{}, false
	}
	return flow, true
}

func (c *oauthStateCodec) mac(body string) string {
	h := hmac.New(sha256.New, c.key)
	h.Write([]byte(body))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// writeOAuthCookie stores value for the callback; a negative maxAge clears it.
func writeOAuthCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthCookieName, value, maxAge, oauthCookiePath, "", c.Request.TLS != nil, true)
}
