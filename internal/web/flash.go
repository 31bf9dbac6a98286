package web

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/emiliopalmerini/labgenie/internal/web/templates"
)

const flashCookieName = "labgenie_flash"

// maxFlashValueBytes keeps the cookie under the 4096-byte browser limit
// once the name and attributes are added.
const maxFlashValueBytes = 3800

// Flash categories.
const (
	FlashError   = "error"
	FlashSuccess = "success"
)

// flasher carries one-shot messages across a redirect in an HMAC-signed
// cookie.
type flasher struct {
	key []byte
}

func newFlasher(secret string) *flasher {
	return &flasher{key: []byte(secret)}
}

// add queues a message for the next rendered page, keeping any messages the
// request already carried. When the cookie would grow too large, older
// messages are dropped first and then the new message is shortened.
func (f *flasher) add(w http.ResponseWriter, r *http.Request, category, message string) {
	flashes := append(f.read(r), templates.Flash{Category: category, Message: message})

	value, ok := f.encode(flashes)
	for !ok && len(flashes) > 1 {
		flashes = flashes[1:]
		value, ok = f.encode(flashes)
	}
	runes := []rune(message)
	for n := len(runes); !ok && n > 0; {
		n /= 2
		flashes[0].Message = string(runes[:n]) + "..."
		value, ok = f.encode(flashes)
	}
	if !ok {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// pop returns the queued messages and clears the cookie.
func (f *flasher) pop(w http.ResponseWriter, r *http.Request) []templates.Flash {
	flashes := f.read(r)
	if _, err := r.Cookie(flashCookieName); err == nil {
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return flashes
}

func (f *flasher) read(r *http.Request) []templates.Flash {
	c, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}
	payload, ok := f.verify(c.Value)
	if !ok {
		return nil
	}
	var flashes []templates.Flash
	if err := json.Unmarshal(payload, &flashes); err != nil {
		return nil
	}
	return flashes
}

// encode signs flashes and reports whether the result fits in a cookie.
func (f *flasher) encode(flashes []templates.Flash) (string, bool) {
	payload, err := json.Marshal(flashes)
	if err != nil {
		return "", false
	}
	value := f.sign(payload)
	return value, len(value) <= maxFlashValueBytes
}

func (f *flasher) sign(payload []byte) string {
	mac := hmac.New(sha256.New, f.key)
	mac.Write(payload)
	return base64.RawURLEncoding.EncodeToString(payload) + "." +
		base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (f *flasher) verify(value string) ([]byte, bool) {
	encPayload, encSig, ok := strings.Cut(value, ".")
	if !ok {
		return nil, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(encPayload)
	if err != nil {
		return nil, false
	}
	sig, err := base64.RawURLEncoding.DecodeString(encSig)
	if err != nil {
		return nil, false
	}

	mac := hmac.New(sha256.New, f.key)
	mac.Write(payload)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return nil, false
	}
	return payload, true
}
