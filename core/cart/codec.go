package cart

import (
	"encoding/base64"
	"encoding/json"
	"net/url"

	"github.com/sirupsen/logrus"
)

// Encode serializes the cart into a single cookie-safe string. The value
// is encoded exactly once; callers must not layer URL-encoding on top.
func Encode(c Cart) string {
	raw, err := json.Marshal(c)
	if err != nil {
		// Cart is a plain value type; marshalling cannot fail in practice.
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Decode parses a raw cart cookie value. A direct parse is attempted
// first, then a URL-unescaped one for values written by clients that
// escaped the cookie, then a legacy plain-JSON parse. Anything still
// unreadable degrades to an empty cart: a corrupted cookie must never
// break the page. The fallback is logged so the data loss stays visible.
func Decode(raw string, log logrus.FieldLogger) Cart {
	if raw == "" {
		return Cart{}
	}

	if c, err := decode(raw); err == nil {
		return c
	}

	if unescaped, err := url.QueryUnescape(raw); err == nil {
		if c, err := decode(unescaped); err == nil {
			return c
		}
	}

	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err == nil {
		return sanitize(c)
	}

	if log != nil {
		log.WithField("value_len", len(raw)).Warn("unreadable cart cookie, degrading to empty cart")
	}
	return Cart{}
}

func decode(raw string) (Cart, error) {
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return Cart{}, err
	}
	var c Cart
	if err := json.Unmarshal(b, &c); err != nil {
		return Cart{}, err
	}
	return sanitize(c), nil
}

// sanitize re-establishes the cart invariants on decoded input: no line
// with quantity < 1 and no two lines sharing an item id.
func sanitize(c Cart) Cart {
	var out Cart
	for _, l := range c.Items {
		if l.ItemID == "" || l.Quantity < 1 {
			continue
		}
		out.Add(l)
	}
	return out
}
