package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"hoshin-matrix/internal/models"

	"github.com/rs/zerolog/log"
)

var suggestionsHeader = []string{"Category", "Suggestions"}

// ExtractSuggestions splits the suggestions response into one row per
// numbered category. A category whose section is missing gets the
// "Not available" sentinel; any other failure yields the single-row error
// table.
func ExtractSuggestions(text string) (table models.SuggestionTable) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Suggestion extraction failed")
			table = suggestionsFallback()
		}
	}()

	sections, err := extractSections(text, models.SuggestionCategories)
	if err != nil {
		log.Error().Err(err).Msg("Suggestion extraction failed")
		return suggestionsFallback()
	}

	table.Header = suggestionsHeader
	for i, category := range models.SuggestionCategories {
		table.Rows = append(table.Rows, []string{category, sections[i]})
	}
	return table
}

func suggestionsFallback() models.SuggestionTable {
	return models.SuggestionTable{
		Header: []string{"Suggestions"},
		Rows:   [][]string{{models.SuggestionsFailed}},
	}
}

// extractSections returns the trimmed body under each "N. <label>" heading,
// up to the next line opening with a later section number or the end of text.
func extractSections(text string, labels []string) ([]string, error) {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	sections := make([]string, len(labels))
	for i, label := range labels {
		sections[i] = models.NotAvailable

		heading, err := regexp.Compile(fmt.Sprintf(models.SuggestionHeadingRegex, i+1, regexp.QuoteMeta(label)))
		if err != nil {
			return nil, fmt.Errorf("failed to compile heading %q: %w", label, err)
		}
		loc := heading.FindStringIndex(text)
		if loc == nil {
			continue
		}
		body := text[loc[1]:]

		if later := laterNumbers(i+2, len(labels)); later != "" {
			end, err := regexp.Compile(fmt.Sprintf(models.SectionEndRegex, later))
			if err != nil {
				return nil, fmt.Errorf("failed to compile section end %q: %w", label, err)
			}
			if eloc := end.FindStringIndex(body); eloc != nil {
				body = body[:eloc[0]]
			}
		}
		if content := strings.TrimSpace(body); content != "" {
			sections[i] = content
		}
	}
	return sections, nil
}

// laterNumbers joins from..to as a regexp alternation, "" when from > to.
func laterNumbers(from, to int) string {
	var nums []string
	for n := from; n <= to; n++ {
		nums = append(nums, strconv.Itoa(n))
	}
	return strings.Join(nums, "|")
}
