package lookup

import "fmt"

// promptTemplate asks the model to check the spelling of a word and, when it is
// correct, return its Persian meaning, three examples and a four-option quiz as
// strict JSON. %[1]s is the word.
const promptTemplate = `
    Check if the English word "%[1]s" is spelled correctly. If yes, respond with correct: true. If not, respond with correct: false and do not provide meaning or examples.
    
    If the word is correct, provide:
    - The part of speech (type of the word) in Persian (e.g. اسم، فعل، صفت).
    - A short Persian meaning.
    - 3 English example sentences with Persian translations.
    
    Also, generate a quiz object with:
    - A Persian question asking for the meaning of the word.
    - The original word as "word".
    - An array of 4 options, each as an object with:
      - "id": a unique option ID (e.g. "a", "b", "c", "d")
      - "text": the Persian text of the option
    - A field "answer" that contains only the correct option's id.
    
    Respond strictly in the following JSON format:
    
    {
      "word": "%[1]s",
      "correct": true,
      "partOfSpeech": "اسم", // or فعل, صفت, ...
      "meaning": "...",
      "examples": [
        { "english": "Example 1", "persian": "مثال ۱" },
        { "english": "Example 2", "persian": "مثال ۲" },
        { "english": "Example 3", "persian": "مثال ۳" }
      ],
      "quiz": {
        "question": "معنای کلمه «%[1]s» چیست؟",
        "word": "%[1]s",
        "options": [
          { "id": "a", "text": "گزینه ۱" },
          { "id": "b", "text": "گزینه ۲" },
          { "id": "c", "text": "گزینه ۳" },
          { "id": "d", "text": "گزینه ۴" }
        ],
        "answer": "c"
      }
    }
    
    If the word is not spelled correctly, just respond:
    
    {
      "word": "%[1]s",
      "correct": false
    }
    `

// BuildPrompt renders the lookup prompt for word.
func BuildPrompt(word string) string {
	return fmt.Sprintf(promptTemplate, word)
}
