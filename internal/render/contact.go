// Package render turns a parsed document and a resolved style into output
// artifacts.
package render

import "strings"

// profileLink builds the URL and display label for a profile handle,
// tolerating values that are already full URLs.
func profileLink(host, value string) (url, label string) {
	v := strings.TrimSpace(value)
	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		label = strings.TrimPrefix(strings.TrimPrefix(v, "https://"), "http://")
		return v, strings.TrimSuffix(label, "/")
	}
	return "https://" + host + "/" + v, host + "/" + v
}

// linkURL normalizes a bare website value to an absolute URL.
func linkURL(value string) string {
	v := strings.TrimSpace(value)
	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		return v
	}
	return "https://" + v
}
