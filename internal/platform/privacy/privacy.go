// Package privacy masks personal data before it reaches logs.
package privacy

import (
	"fmt"
	"net"
	"strings"
	"unicode"
)

// visibleTail is how many trailing letters or digits Mask leaves readable.
const visibleTail = 2

// AnonymizeIP zeroes the host part of an address: the last octet for IPv4,
// everything past the /48 prefix for IPv6. It returns "unknown" for empty
// input and "invalid" when the address cannot be parsed.
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "invalid"
	}
	if v4 := parsed.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.%d.0", v4[0], v4[1], v4[2])
	}
	return fmt.Sprintf("%02x%02x:%02x%02x:%02x%02x::",
		parsed[0], parsed[1],
		parsed[2], parsed[3],
		parsed[4], parsed[5])
}

// Mask replaces letters and digits with '*' except the last two, keeping
// punctuation so formatted documents stay recognizable:
// "123.456.789-09" becomes "***.***.***-09".
func Mask(s string) string {
	runes := []rune(s)
	keep := 0
	for i := len(runes) - 1; i >= 0; i-- {
		if !isMaskable(runes[i]) {
			continue
		}
		if keep < visibleTail {
			keep++
			continue
		}
		runes[i] = '*'
	}
	return string(runes)
}

// MaskEmail keeps the first character of the local part and the domain.
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return Mask(email)
	}
	first := []rune(email[:at])[0]
	return string(first) + "***" + email[at:]
}

func isMaskable(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
