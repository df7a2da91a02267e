package cipher

import (
	"strings"
	"unicode"
)

// ChunkSize is the number of symbols that encode a single letter.
const ChunkSize = 5

// baconCodes is the only source of truth for the code table: index i holds the
// code for the letter alphabet[i]. Every code is i written in 5-bit binary with
// 'a' for 0 and 'b' for 1.
var baconCodes = [len(alphabet)]string{
	"aaaaa", "aaaab", "aaaba", "aaabb", "aabaa",
	"aabab", "aabba", "aabbb", "abaaa", "abaab",
	"ababa", "ababb", "abbaa", "abbab", "abbba",
	"abbbb", "baaaa", "baaab", "baaba", "baabb",
	"babaa", "babab", "babba", "babbb", "bbaaa",
	"bbaab",
}

// baconLetters is derived from baconCodes so the two directions cannot drift.
var baconLetters = func() map[string]rune {
	m := make(map[string]rune, len(baconCodes))
	for i, code := range baconCodes {
		m[code] = rune(alphabet[i])
	}
	return m
}()

// BaconEncrypt replaces every ASCII letter with its five symbol code. Uppercase
// letters produce uppercase codes. Other characters stay where they are.
func BaconEncrypt(text string) string {
	var sb strings.Builder
	sb.Grow(len(text) * ChunkSize)

	for _, r := range text {
		if !isASCIILetter(r) {
			sb.WriteRune(r)
			continue
		}

		code := baconCodes[unicode.ToLower(r)-'a']
		if unicode.IsUpper(r) {
			code = strings.ToUpper(code)
		}
		sb.WriteString(code)
	}

	return sb.String()
}

// BaconDecrypt collects letters into groups of ChunkSize and turns each group back
// into a letter. Non-letters are written out as soon as they are seen, so they keep
// their position relative to the decoded letters.
//
// A group that is entirely lowercase decodes to a lowercase letter; any other group
// decodes to uppercase. A group with no entry in the table is written out verbatim.
// Letters left over at the end of the input that do not fill a group are dropped.
func BaconDecrypt(text string) string {
	var sb strings.Builder
	chunk := make([]rune, 0, ChunkSize)

	for _, r := range text {
		if !isASCIILetter(r) {
			sb.WriteRune(r)
			continue
		}

		chunk = append(chunk, r)
		if len(chunk) < ChunkSize {
			continue
		}

		sb.WriteString(resolveChunk(string(chunk)))
		chunk = chunk[:0]
	}

	return sb.String()
}

func resolveChunk(chunk string) string {
	lower := strings.ToLower(chunk)

	letter, ok := baconLetters[lower]
	if !ok {
		return chunk
	}

	if chunk == lower {
		return string(letter)
	}
	return string(unicode.ToUpper(letter))
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
