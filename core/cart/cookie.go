package cart

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const CookieName = "cart"

const cookieMaxAge = 7 * 24 * time.Hour

// FromRequest reads the cart cookie, tolerantly. A missing or unreadable
// cookie yields an empty cart.
func FromRequest(r *http.Request, log logrus.FieldLogger) Cart {
	ck, err := r.Cookie(CookieName)
	if err != nil {
		return Cart{}
	}
	return Decode(ck.Value, log)
}

// WriteCookie stores the cart in its cookie. Unlike the session cookie it
// stays readable by client script, which renders the cart badge locally.
func WriteCookie(w http.ResponseWriter, c Cart) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    Encode(c),
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie empties the cart cookie, used after a successful checkout.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})
}
