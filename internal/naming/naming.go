// Package naming derives display names, sort keys, and link targets from file and directory names.
package naming

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMaxLength is the number of characters kept before a name is truncated.
	DefaultMaxLength = 60
	// TruncateSuffix is appended to truncated text.
	TruncateSuffix = "..."

	numberedRank   = 0
	unnumberedRank = 1

	pathSeparator  = "/"
	upperHexDigits = "0123456789ABCDEF"
)

var (
	numberPrefixPattern = regexp.MustCompile(`^(\d+)\.\s`)
	displayNamePattern  = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)

	wikilinkEscaper = strings.NewReplacer("[", `\[`, "]", `\]`)
)

// SortKey orders siblings: numbered names first by number, then the rest case-insensitively.
type SortKey struct {
	Rank     int
	Number   int
	Fallback string
	RawName  string
}

// Less reports whether key sorts before other.
func (key SortKey) Less(other SortKey) bool {
	return key.Compare(other) < 0
}

// Compare returns -1, 0 or 1. Keys built from distinct names never compare equal.
func (key SortKey) Compare(other SortKey) int {
	if key.Rank != other.Rank {
		return compareInts(key.Rank, other.Rank)
	}
	if key.Number != other.Number {
		return compareInts(key.Number, other.Number)
	}
	if comparison := strings.Compare(key.Fallback, other.Fallback); comparison != 0 {
		return comparison
	}
	return strings.Compare(key.RawName, other.RawName)
}

// DisplayName is the visible text of an entry together with its optional order prefix.
type DisplayName struct {
	Text     string
	Order    int
	HasOrder bool
}

// DetectNumberPrefix reports whether name starts with "<digits>. " and returns the parsed number.
func DetectNumberPrefix(name string) (bool, int) {
	matches := numberPrefixPattern.FindStringSubmatch(name)
	if matches == nil {
		return false, 0
	}
	number, parseError := strconv.Atoi(matches[1])
	if parseError != nil {
		return false, 0
	}
	return true, number
}

// SiblingSortKey builds the key used to order files or directories within one directory.
func SiblingSortKey(name string) SortKey {
	hasNumber, number := DetectNumberPrefix(name)
	if hasNumber {
		return SortKey{Rank: numberedRank, Number: number, Fallback: name, RawName: name}
	}
	return SortKey{Rank: unnumberedRank, Number: 0, Fallback: strings.ToLower(name), RawName: name}
}

// Truncate shortens text to maxLength characters followed by TruncateSuffix.
// Length is measured in runes so multi-byte text is never split.
func Truncate(text string, maxLength int) string {
	if maxLength < 0 {
		maxLength = 0
	}
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLength]) + TruncateSuffix
}

// DeriveDisplayName strips a leading "<digits>. " prefix for display and keeps the number as the order.
// A prefix too large for int is kept in the text, matching DetectNumberPrefix which treats it as absent.
func DeriveDisplayName(name string) DisplayName {
	matches := displayNamePattern.FindStringSubmatch(name)
	if matches == nil {
		return DisplayName{Text: name}
	}
	order, parseError := strconv.Atoi(matches[1])
	if parseError != nil {
		return DisplayName{Text: name}
	}
	return DisplayName{Text: matches[2], Order: order, HasOrder: true}
}

// EscapeForWikilink escapes square brackets so text can sit inside [[target|text]].
func EscapeForWikilink(text string) string {
	return wikilinkEscaper.Replace(text)
}

// EncodeLinkTarget percent-encodes every segment of a slash-separated path, keeping the separators.
func EncodeLinkTarget(relativePath string) string {
	segments := strings.Split(relativePath, pathSeparator)
	for segmentIndex, segment := range segments {
		segments[segmentIndex] = encodeSegment(segment)
	}
	return strings.Join(segments, pathSeparator)
}

// encodeSegment escapes every byte outside the RFC 3986 unreserved set.
// url.PathEscape leaves "(" and ")" untouched, which terminates a Markdown link destination early.
func encodeSegment(segment string) string {
	var builder strings.Builder
	builder.Grow(len(segment))
	for byteIndex := 0; byteIndex < len(segment); byteIndex++ {
		currentByte := segment[byteIndex]
		if isUnreserved(currentByte) {
			builder.WriteByte(currentByte)
			continue
		}
		builder.WriteByte('%')
		builder.WriteByte(upperHexDigits[currentByte>>4])
		builder.WriteByte(upperHexDigits[currentByte&0x0F])
	}
	return builder.String()
}

func isUnreserved(candidate byte) bool {
	switch {
	case candidate >= 'A' && candidate <= 'Z':
		return true
	case candidate >= 'a' && candidate <= 'z':
		return true
	case candidate >= '0' && candidate <= '9':
		return true
	case candidate == '-', candidate == '_', candidate == '.', candidate == '~':
		return true
	default:
		return false
	}
}

func compareInts(left, right int) int {
	if left < right {
		return -1
	}
	if left > right {
		return 1
	}
	return 0
}
