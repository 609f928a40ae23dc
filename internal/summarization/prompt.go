package summarization

import "strings"

const transcriptPreamble = "given this transcript from an audio file (with possible parts missing)"

// DescriptionInstruction asks for a short summary suitable for a video description.
const DescriptionInstruction = "generate a summary of the talk for video description purposes"

// ArticleInstruction asks for a long-form write-up that ends with the Q&A.
const ArticleInstruction = "give me an article from this content. along with the q&a section at the end"

func buildPrompt(transcript, instruction string) string {
	var b strings.Builder
	b.Grow(len(transcript) + len(transcriptPreamble) + len(instruction) + 8)
	b.WriteString(transcriptPreamble)
	b.WriteString("\n\n")
	b.WriteString(transcript)
	b.WriteString("\n\n")
	b.WriteString(instruction)
	b.WriteString("\n")
	return b.String()
}

// renderMarkdown lays out the summary document. The heading is the talk's
// base file name, not the original title.
func renderMarkdown(base, description, article string) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(base)
	b.WriteString("\n\n## Description\n")
	b.WriteString(description)
	b.WriteString("\n\n## Article\n")
	b.WriteString(article)
	b.WriteString("\n")
	return b.String()
}
