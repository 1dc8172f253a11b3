package game

import (
	"fmt"
	"strings"
)

// buildHint masks a trivia answer, revealing progressively more per level
// (roughly a quarter, half, then three quarters of each word). Words of three
// characters or fewer only ever reveal their first character, so articles
// like "The" never show up whole.
func buildHint(answer string, level int) string {
	words := strings.Fields(answer)
	hints := make([]string, 0, len(words))

	for _, w := range words {
		runes := []rune(w)
		length := len(runes)
		if length == 0 {
			continue
		}

		var show int
		if length <= 3 {
			show = 1
		} else {
			switch level {
			case 1:
				show = length / 4
			case 2:
				show = length / 2
			default:
				show = (3 * length) / 4
			}
			if show < 1 {
				show = 1
			}
		}

		hints = append(hints, string(runes[:show])+strings.Repeat("•", length-show))
	}

	return strings.Join(hints, " ")
}

// scrambleFirstHint reveals the first letter and the length of the word.
func scrambleFirstHint(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return ""
	}
	return fmt.Sprintf("Starts with **%s** (%d letters)", strings.ToUpper(string(runes[0])), len(runes))
}

// scrambleSecondHint shows the first letter and one more in position,
// e.g. "C _ _ _ _ E _".
func scrambleSecondHint(word string) string {
	runes := []rune(word)
	length := len(runes)
	if length == 0 {
		return ""
	}

	reveal := map[int]bool{0: true}
	if length > 2 {
		reveal[length-2] = true
	} else if length > 1 {
		reveal[1] = true
	}

	parts := make([]string, length)
	for i, r := range runes {
		if reveal[i] {
			parts[i] = strings.ToUpper(string(r))
		} else {
			parts[i] = "_"
		}
	}
	return strings.Join(parts, " ")
}

// singleCharAnswer reports whether any accepted answer is a lone character;
// those rounds get no real hints.
func singleCharAnswer(answers []string) bool {
	for _, a := range answers {
		if len([]rune(strings.TrimSpace(a))) == 1 {
			return true
		}
	}
	return false
}
