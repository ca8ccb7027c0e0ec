package scrape

import (
	"net/http"
	"strings"
)

// BlockType describes the kind of block detected.
type BlockType string

const (
	BlockNone       BlockType = ""
	BlockCloudflare BlockType = "cloudflare"
	BlockCaptcha    BlockType = "captcha"
	BlockRateLimit  BlockType = "rate_limit"
	BlockJSShell    BlockType = "js_shell"
)

// challengeBodyLimit caps the body size at which a 2xx captcha prompt counts
// as a challenge page.
const challengeBodyLimit = 16 * 1024

var captchaChallengePhrases = []string{
	"complete the captcha",
	"complete the recaptcha",
	"solve the captcha",
	"verify you are human",
	"verify that you are human",
	"are you a robot",
	"not a robot to continue",
}

// DetectBlock checks a static response for signs of anti-bot protection.
func DetectBlock(status int, header http.Header, body []byte) BlockType {
	// Cloudflare: 403/503 with cf-* headers.
	if status == http.StatusForbidden || status == http.StatusServiceUnavailable {
		if header.Get("cf-ray") != "" || header.Get("cf-cache-status") != "" ||
			strings.EqualFold(header.Get("server"), "cloudflare") {
			return BlockCloudflare
		}
	}
	if status == http.StatusTooManyRequests {
		return BlockRateLimit
	}

	lower := strings.ToLower(string(body))

	if strings.Contains(lower, "checking your browser") ||
		strings.Contains(lower, "cf-browser-verification") ||
		strings.Contains(lower, "cf-challenge") {
		return BlockCloudflare
	}

	// A 2xx page only counts as a captcha wall when it asks the visitor to
	// solve one. A contact form carrying a reCAPTCHA widget is content.
	if strings.Contains(lower, "captcha") {
		if status < 200 || status > 299 {
			return BlockCaptcha
		}
		if len(body) < challengeBodyLimit && containsAny(lower, captchaChallengePhrases) {
			return BlockCaptcha
		}
	}

	// JS-only shell: very small body with noscript or meta refresh.
	if len(body) < 2000 {
		if strings.Contains(lower, "<noscript") && strings.Contains(lower, "javascript") {
			return BlockJSShell
		}
		if strings.Contains(lower, `http-equiv="refresh"`) {
			return BlockJSShell
		}
	}

	return BlockNone
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
