package stats

import (
	"sort"
	"strings"

	"github.com/AI2HU/tubedash/internal/models"
)

// WordStat is one entry of the title word analysis.
type WordStat struct {
	Word       string  `json:"word"`
	Matches    int     `json:"matches"`
	TotalViews float64 `json:"total_views"`
	AvgViews   float64 `json:"avg_views"`
}

// Portuguese stop words excluded from the title analysis.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "e", "o", "é", "de", "do", "da", "dos", "das", "em", "no", "na", "nos", "nas",
		"um", "uma", "uns", "umas", "para", "por", "com", "se", "que", "não", "mais", "muito",
		"como", "sobre", "após", "até", "sem", "seu", "sua", "seus", "suas", "ele", "ela",
		"eles", "elas", "isso", "isto", "aqui", "ali", "lá", "já", "ainda", "também", "só",
		"mas", "ou", "quando", "onde", "porque", "então", "assim", "bem", "vai", "vou",
		"ter", "tem", "foi", "ser", "são", "está", "estão", "pelo", "pela", "pelos", "pelas",
	} {
		stopWords[w] = struct{}{}
	}
}

// accented letters kept alongside ASCII word characters when tokenizing.
const accented = "áéíóúàèìòùâêîôûãõçñ"

// TopWords tokenizes the 24h video titles and ranks words by the total views
// of the videos they appear in. Words shorter than 3 runes and Portuguese
// stop words are skipped; at most the top 50 words are returned.
func TopWords(videos []models.Row) []WordStat {
	counts := make(map[string]int)
	views := make(map[string]float64)

	for _, v := range videos {
		title := strings.ToLower(v.Str("title"))
		vw := v.Number("views")

		for _, word := range tokenize(title) {
			counts[word]++
			views[word] += vw
		}
	}

	out := make([]WordStat, 0, len(counts))
	for word, count := range counts {
		w := WordStat{Word: word, Matches: count, TotalViews: views[word]}
		if count > 0 {
			w.AvgViews = w.TotalViews / float64(count)
		}
		out = append(out, w)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalViews != out[j].TotalViews {
			return out[i].TotalViews > out[j].TotalViews
		}
		return out[i].Word < out[j].Word
	})

	if len(out) > 50 {
		out = out[:50]
	}
	return out
}

// tokenize splits a lowercased title into candidate words, replacing any rune
// that is not a word character, whitespace or a kept accented letter with a
// space.
func tokenize(title string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r == ' ' || r == '\t' || r == '\n':
			return r
		case strings.ContainsRune(accented, r):
			return r
		default:
			return ' '
		}
	}, title)

	var words []string
	for _, w := range strings.Fields(cleaned) {
		if len([]rune(w)) < 3 {
			continue
		}
		if _, skip := stopWords[w]; skip {
			continue
		}
		words = append(words, w)
	}
	return words
}
