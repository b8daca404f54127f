// Package classifier flags article titles by keyword.
package classifier

import "strings"

var (
	// DefaultCensoredKeywords hide an article from storage when present in its title
	DefaultCensoredKeywords = []string{"spacex", "musk"}
	// DefaultPositiveKeywords mark an article as positive when present in its title
	DefaultPositiveKeywords = []string{"mars", "moon"}
)

// Classifier matches titles against lowercase keyword lists.
// It is safe for concurrent use.
type Classifier struct {
	censored []string
	positive []string
}

// New builds a classifier; nil lists fall back to the defaults while
// a non-nil empty list disables that match entirely
func New(censored, positive []string) *Classifier {
	if censored == nil {
		censored = DefaultCensoredKeywords
	}
	if positive == nil {
		positive = DefaultPositiveKeywords
	}
	return &Classifier{
		censored: normalize(censored),
		positive: normalize(positive),
	}
}

// IsCensored reports whether the title contains any censored keyword
func (c *Classifier) IsCensored(title string) bool {
	return containsAny(title, c.censored)
}

// Sentiment returns 1 when the title contains a positive keyword, 0 otherwise
func (c *Classifier) Sentiment(title string) int {
	if containsAny(title, c.positive) {
		return 1
	}
	return 0
}

func containsAny(title string, keywords []string) bool {
	if title == "" {
		return false
	}
	lower := strings.ToLower(title)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func normalize(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
