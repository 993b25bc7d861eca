package prompts

import (
	_ "embed"
	"strings"
)

//go:embed template/extract_prompt.txt
var extractPrompt string

//go:embed template/query_prompt.txt
var queryPrompt string

//go:embed template/response_prompt.txt
var responsePrompt string

// RenderExtract builds the slot-extraction prompt for one user question.
// Only the known token is replaced so JSON braces in the template stay intact.
func RenderExtract(question string) string {
	return strings.NewReplacer("{question}", question).Replace(extractPrompt)
}

// RenderQuery builds the Mongo query synthesis prompt. The template carries
// the full schema of both collections and the output formatting rules.
func RenderQuery(question string) string {
	return strings.NewReplacer("{question}", question).Replace(queryPrompt)
}

// RenderResponse builds the friendly-answer prompt from the original
// question and the raw query result serialized as JSON.
func RenderResponse(question, data string) string {
	return strings.NewReplacer(
		"{question}", question,
		"{data}", data,
	).Replace(responsePrompt)
}
