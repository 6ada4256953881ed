package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// GenerateSlug converts a string into a URL-friendly slug.
// e.g. "Men's Silk Tie!" -> "mens-silk-tie"
func GenerateSlug(input string) string {
	s := strings.ToLower(input)

	// Remove invalid chars (keep a-z, 0-9, space, hyphen)
	reg := regexp.MustCompile("[^a-z0-9 -]+")
	s = reg.ReplaceAllString(s, "")

	s = strings.ReplaceAll(s, " ", "-")

	// Collapse multiple hyphens
	reg2 := regexp.MustCompile("-+")
	s = reg2.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// GenerateTimeID builds a millisecond-timestamped identifier like
// "prod-1700000000000" or "ORD-1700000000000". Public order references and
// default product IDs both use this shape.
func GenerateTimeID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixMilli())
}
