package testskip

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// CurrentLocale returns the language part of the process locale, in the
// conventional lang_REGION form, or "" when no specific locale is set.
//
// The value is read from the environment on every call (LC_ALL wins over
// LC_MESSAGES, which wins over LANG), so callers always see the locale
// in effect at test-run time.
func CurrentLocale() string {
	raw := ""
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			raw = v
			break
		}
	}
	// Strip the codeset/modifier: "en_US.UTF-8" -> "en_US".
	raw, _, _ = strings.Cut(raw, ".")
	raw, _, _ = strings.Cut(raw, "@")
	if raw == "" || raw == "C" || raw == "POSIX" {
		return ""
	}
	return raw
}

// IsUSLocale reports whether the current locale resolves to en_US.
func IsUSLocale() bool {
	cur := CurrentLocale()
	if cur == "" {
		return false
	}
	tag, err := language.Parse(strings.ReplaceAll(cur, "_", "-"))
	if err != nil {
		return false
	}
	base, confB := tag.Base()
	region, confR := tag.Region()
	if confB == language.No || confR == language.No {
		return false
	}
	return base.String() == "en" && region.String() == "US"
}
