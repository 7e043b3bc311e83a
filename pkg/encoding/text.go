// Package encoding decodes names written by tools that predate UTF-8.
package encoding

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// EUCKRToUTF8 converts EUC-KR encoded bytes to a UTF-8 string. It returns
// the input unchanged if conversion fails.
func EUCKRToUTF8(data []byte) string {
	result, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// Windows1252ToUTF8 converts Windows-1252 bytes to a UTF-8 string. Every
// byte maps to some rune, so it never fails.
func Windows1252ToUTF8(data []byte) string {
	result, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// DecodeName returns s as UTF-8. Valid UTF-8 passes through untouched;
// otherwise EUC-KR is tried first and Windows-1252 covers the rest.
func DecodeName(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	if k := EUCKRToUTF8([]byte(s)); utf8.ValidString(k) && !strings.ContainsRune(k, utf8.RuneError) {
		return k
	}
	return Windows1252ToUTF8([]byte(s))
}

// UTF8ToEUCKR converts a UTF-8 string to EUC-KR bytes. It returns the input
// bytes if conversion fails.
func UTF8ToEUCKR(s string) []byte {
	result, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(s))
	if err != nil {
		return []byte(s)
	}
	return result
}
