// Package fuzzy ranks task titles and notes against a free-text query with
// typo tolerance.
package fuzzy

import (
	"strings"
	"unicode"
)

// Field weights. A title hit always outranks a notes hit of the same kind.
const (
	titleContains  = 100.0
	titleWordBonus = 50.0
	titleFuzzy     = 50.0
	titlePrefix    = 40.0
	notesContains  = 30.0
	notesFuzzy     = 15.0
)

// notesScanLimit caps how much of the notes is examined word by word.
const notesScanLimit = 500

// Distance is the Levenshtein edit distance between the normalized forms of
// a and b, counted in runes.
func Distance(a, b string) int {
	r1 := []rune(Normalize(a))
	r2 := []rune(Normalize(b))
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(r2)]
}

// Threshold is the number of typos tolerated for a query of this length.
func Threshold(query string) int {
	n := len([]rune(Normalize(query)))
	switch {
	case n <= 3:
		return 1
	case n >= 8:
		return 3
	default:
		return 2
	}
}

// Match reports whether query occurs in text, or is within the query's
// threshold of one of text's words, or prefixes one of them.
func Match(query, text string) bool {
	q := Normalize(query)
	t := Normalize(text)
	if q == "" {
		return false
	}
	if strings.Contains(t, q) {
		return true
	}
	limit := Threshold(q)
	for _, word := range strings.Fields(t) {
		if strings.HasPrefix(word, q) || Distance(q, word) <= limit {
			return true
		}
	}
	return false
}

// Score ranks a task for query. Zero means no match.
func Score(query, title string, notes *string) float64 {
	q := Normalize(query)
	if q == "" {
		return 0
	}
	limit := Threshold(q)
	score := 0.0

	t := Normalize(title)
	if strings.Contains(t, q) {
		score += titleContains
		if containsWord(t, q) {
			score += titleWordBonus
		}
	} else {
		for _, word := range strings.Fields(t) {
			if d := Distance(q, word); d <= limit {
				score += titleFuzzy - float64(d)*15
			}
			if strings.HasPrefix(word, q) {
				score += titlePrefix
			}
		}
	}

	if notes != nil {
		n := Normalize(*notes)
		if strings.Contains(n, q) {
			score += notesContains
		} else {
			if r := []rune(n); len(r) > notesScanLimit {
				n = string(r[:notesScanLimit])
			}
			for _, word := range strings.Fields(n) {
				if d := Distance(q, word); d <= limit {
					score += notesFuzzy - float64(d)*5
					break
				}
			}
		}
	}
	return score
}

// Normalize lowercases, folds common Latin diacritics and collapses spaces.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(fold(r))
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func containsWord(text, word string) bool {
	for _, w := range strings.Fields(text) {
		if w == word {
			return true
		}
	}
	return false
}

func fold(r rune) rune {
	switch r {
	case 'á', 'à', 'ả', 'ã', 'ạ', 'ă', 'ắ', 'ằ', 'ẳ', 'ẵ', 'ặ', 'â', 'ấ', 'ầ', 'ẩ', 'ẫ', 'ậ', 'ä', 'å':
		return 'a'
	case 'é', 'è', 'ẻ', 'ẽ', 'ẹ', 'ê', 'ế', 'ề', 'ể', 'ễ', 'ệ', 'ë':
		return 'e'
	case 'í', 'ì', 'ỉ', 'ĩ', 'ị', 'î', 'ï':
		return 'i'
	case 'ó', 'ò', 'ỏ', 'õ', 'ọ', 'ô', 'ố', 'ồ', 'ổ', 'ỗ', 'ộ', 'ơ', 'ớ', 'ờ', 'ở', 'ỡ', 'ợ', 'ö':
		return 'o'
	case 'ú', 'ù', 'ủ', 'ũ', 'ụ', 'ư', 'ứ', 'ừ', 'ử', 'ữ', 'ự', 'û', 'ü':
		return 'u'
	case 'ý', 'ỳ', 'ỷ', 'ỹ', 'ỵ', 'ÿ':
		return 'y'
	case 'đ':
		return 'd'
	case 'ç':
		return 'c'
	case 'ñ':
		return 'n'
	}
	return r
}
