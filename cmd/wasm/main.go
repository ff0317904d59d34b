//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"coursekit/internal/usecase"
)

var session *usecase.Session

func init() {
	session = newSession()
}

func newSession() *usecase.Session {
	s, err := usecase.NewSession("browser", "", nil)
	if err != nil {
		panic(err)
	}
	return s
}

func main() {
	c := make(chan struct{})

	js.Global().Set("courseAdd", js.FuncOf(addText))
	js.Global().Set("courseAsk", js.FuncOf(ask))
	js.Global().Set("courseSummarize", js.FuncOf(summarize))
	js.Global().Set("courseFlashcards", js.FuncOf(flashcards))
	js.Global().Set("courseClear", js.FuncOf(clearSession))
	js.Global().Set("courseStats", js.FuncOf(getStats))

	<-c
}

func addText(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: courseAdd(text)")
	}

	chunks := session.AddText(args[0].String())
	return makeResult(map[string]interface{}{
		"success": true,
		"chunks":  chunks,
	})
}

func ask(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: courseAsk(question)")
	}

	ans, err := session.Answer(args[0].String())
	if err != nil {
		return makeError("answer failed: " + err.Error())
	}

	sources := make([]string, len(ans.Sources))
	for i, c := range ans.Sources {
		sources[i] = c.Text
	}
	return makeResult(map[string]interface{}{
		"question": ans.Question,
		"answer":   ans.Text,
		"outcome":  ans.Outcome.String(),
		"sources":  sources,
	})
}

func summarize(this js.Value, args []js.Value) interface{} {
	if len(args) > 0 {
		sum, err := session.SummarizeTopic(args[0].String())
		if err != nil {
			return makeError("summarize failed: " + err.Error())
		}
		return makeResult(map[string]interface{}{
			"summaries": []interface{}{sum},
		})
	}

	summaries := make([]interface{}, 0)
	for _, t := range session.Topics() {
		sum, err := session.SummarizeTopic(t.Label)
		if err != nil {
			return makeError("summarize failed: " + err.Error())
		}
		summaries = append(summaries, sum)
	}
	return makeResult(map[string]interface{}{
		"summaries": summaries,
	})
}

func flashcards(this js.Value, args []js.Value) interface{} {
	count := 0
	if len(args) > 0 {
		count = args[0].Int()
	}

	deck, err := session.GenerateFlashcards(count)
	if err != nil {
		return makeError("flashcard generation failed: " + err.Error())
	}
	return makeResult(map[string]interface{}{
		"id":      deck.ID,
		"cards":   deck.Cards,
		"outcome": deck.Outcome.String(),
	})
}

func clearSession(this js.Value, args []js.Value) interface{} {
	session = newSession()
	return makeResult(map[string]interface{}{
		"success": true,
	})
}

func getStats(this js.Value, args []js.Value) interface{} {
	stats := session.Stats()
	return makeResult(map[string]interface{}{
		"totalChunks": stats.TotalChunks,
		"totalTerms":  stats.TotalTerms,
		"uniqueTerms": stats.UniqueTerms,
		"sections":    session.Outline().Sections,
	})
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}
