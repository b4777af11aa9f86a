package lexicon

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bastiangx/gridfill/internal/utils"
	"github.com/charmbracelet/log"
)

// Source row parsing follows one rule: a malformed field is coerced to a safe
// default and logged, never fatal. Only an unreadable file is an error.

// LoadWordList reads one word per line into the lexicon.
// Blank lines and '#' comments are skipped; duplicates collapse in the trie.
func LoadWordList(path string, lex *Lexicon) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer file.Close()

	count := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := utils.NormalizeWord(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !utils.IsLowerAlpha(line) {
			log.Debugf("Skipping non-alphabetic word list entry: %q", line)
			continue
		}
		if lex.Add(line) >= 0 {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("failed to read word list %s: %w", path, err)
	}
	log.Debugf("Loaded %d words from %s", count, path)
	return count, nil
}

// LoadWordAttrs reads the frequency/attribute table. Expected columns:
//
//	word,zipf,pos,is_clueable,flags,theme_tags,banned,must_keep
//
// flags and theme_tags are ';' separated. Missing or malformed columns fall
// back to zero values.
func LoadWordAttrs(path string, lex *Lexicon) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open attribute table %s: %w", path, err)
	}
	defer file.Close()

	count := 0
	lineNo := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if lineNo == 1 && strings.HasPrefix(strings.ToLower(line), "word,") {
			continue // header row
		}
		fields := strings.Split(line, ",")
		word := utils.NormalizeWord(field(fields, 0))
		if word == "" {
			log.Debugf("Skipping attribute row %d with empty word", lineNo)
			continue
		}
		lex.SetEntry(WordEntry{
			Word:      word,
			Zipf:      floatField(fields, 1, 0),
			POS:       strings.TrimSpace(field(fields, 2)),
			Clueable:  boolField(fields, 3, false),
			Flags:     listField(fields, 4),
			ThemeTags: listField(fields, 5),
			Banned:    boolField(fields, 6, false),
			MustKeep:  boolField(fields, 7, false),
		})
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("failed to read attribute table %s: %w", path, err)
	}
	log.Debugf("Loaded %d attribute rows from %s", count, path)
	return count, nil
}

// LoadSegments reads the segment catalog. Expected columns:
//
//	text,combo_count,start_combo_count,is_syntactic,morph_prefix,morph_suffix,
//	pos_start,pos_end,atomic_slice,semantic_weight,game_weight
//
// Rows with text outside the 2-5 letter range are skipped, not errors: they
// are bad data, and only the Catalog.Add contract treats bad length as a bug.
func LoadSegments(path string, cat *Catalog) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open segment catalog %s: %w", path, err)
	}
	defer file.Close()

	count := 0
	lineNo := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if lineNo == 1 && strings.HasPrefix(strings.ToLower(line), "text,") {
			continue // header row
		}
		fields := strings.Split(line, ",")
		text := utils.NormalizeWord(field(fields, 0))
		if len(text) < MinSegmentLen || len(text) > MaxSegmentLen || !utils.IsLowerAlpha(text) {
			log.Debugf("Skipping segment row %d with invalid text %q", lineNo, text)
			continue
		}
		cat.Add(Segment{
			Text:            text,
			ComboCount:      intField(fields, 1, 0),
			StartComboCount: intField(fields, 2, 0),
			Syntactic:       boolField(fields, 3, false),
			MorphPrefix:     boolField(fields, 4, false),
			MorphSuffix:     boolField(fields, 5, false),
			PosStart:        boolField(fields, 6, false),
			PosEnd:          boolField(fields, 7, false),
			AtomicSlice:     boolField(fields, 8, false),
			SemanticWeight:  floatField(fields, 9, 0),
			GameWeight:      floatField(fields, 10, 0),
		})
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("failed to read segment catalog %s: %w", path, err)
	}
	log.Debugf("Loaded %d segments from %s", count, path)
	return count, nil
}

func field(fields []string, i int) string {
	if i >= len(fields) {
		return ""
	}
	return fields[i]
}

func floatField(fields []string, i int, def float64) float64 {
	s := strings.TrimSpace(field(fields, i))
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Debugf("Coercing non-numeric field %q to %v", s, def)
		return def
	}
	return v
}

func intField(fields []string, i int, def int) int {
	s := strings.TrimSpace(field(fields, i))
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Debugf("Coercing non-integer field %q to %v", s, def)
		return def
	}
	return v
}

func boolField(fields []string, i int, def bool) bool {
	s := strings.ToLower(strings.TrimSpace(field(fields, i)))
	switch s {
	case "":
		return def
	case "1", "true", "t", "yes", "y":
		return true
	case "0", "false", "f", "no", "n":
		return false
	default:
		log.Debugf("Coercing non-boolean field %q to %v", s, def)
		return def
	}
}

func listField(fields []string, i int) []string {
	s := strings.TrimSpace(field(fields, i))
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
