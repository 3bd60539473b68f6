package utils

import (
	"regexp"
	"strings"
)

// mobileRe matches Vietnamese mobile numbers: a leading 0 or +84 followed
// by a valid carrier prefix and eight digits, e.g. "0912345678" or
// "+84912345678".
var mobileRe = regexp.MustCompile(`^(0|\+84)(3|5|7|8|9)[0-9]{8}$`)

// ValidMobile reports whether s looks like a mobile phone number.  Spaces,
// dots and dashes used as visual separators are stripped before matching.
func ValidMobile(s string) bool {
	cleaned := strings.NewReplacer(" ", "", ".", "", "-", "").Replace(strings.TrimSpace(s))
	return mobileRe.MatchString(cleaned)
}
