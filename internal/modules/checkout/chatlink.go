package checkout

import (
	"net/url"
	"strings"
)

const chatBaseURL = "https://wa.me/"

// ChatLink builds the WhatsApp deep link. An empty message links to the
// conversation without prefilled text.
func ChatLink(phone, message string) string {
	link := chatBaseURL + phone
	if message == "" {
		return link
	}
	return link + "?text=" + escapeComponent(message)
}

// escapeComponent escapes like a URI component: spaces become %20, not '+'.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
