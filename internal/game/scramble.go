package game

import "math/rand"

// shuffleWord returns a scrambled form of the word, guaranteed different from
// the original for words of two or more characters.
func shuffleWord(word string) string {
	runes := []rune(word)
	if len(runes) < 2 {
		return word
	}

	scrambled := word
	for attempt := 0; scrambled == word && attempt < 10; attempt++ {
		rand.Shuffle(len(runes), func(i, j int) {
			runes[i], runes[j] = runes[j], runes[i]
		})
		scrambled = string(runes)
	}

	if scrambled == word {
		// All-same-letter words can't be shuffled apart; reverse as a last resort.
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		scrambled = string(runes)
	}
	return scrambled
}
