package generate

import (
	"fmt"
	"strings"
)

const blogSystemPrompt = `You are an expert content writer who turns video transcripts into polished, publication-ready blog posts. Write in clear, engaging prose with markdown formatting. Ground everything in the transcript; never invent facts the video does not support.`

const keywordSystemPrompt = `You are an SEO assistant. Extract search keywords from blog content. Respond only with JSON.`

const summarySystemPrompt = `You summarize blog posts in a few plain sentences. No markdown, no preamble.`

// jsonInstruction is appended to the user prompt on the text-mode retry so
// a model without native structured output still knows the target shape.
const jsonInstruction = `Respond with a single JSON object and nothing else, using exactly these fields: "title" (string), "content" (markdown string), "summary" (string), "sections" (array of {"heading","content"}), "tags" (array of 5-7 strings), "metaDescription" (string, max 160 characters), "keyTakeaways" (array of strings). Do not wrap the JSON in a code fence.`

// buildBlogPrompt renders the generation request into a system/user prompt
// pair. Pure function of the request.
func buildBlogPrompt(req Request) (system, user string) {
	var sb strings.Builder

	sb.WriteString("## Video\n\n")
	fmt.Fprintf(&sb, "Title: %s\n", req.VideoTitle)
	if req.VideoDescription != "" {
		fmt.Fprintf(&sb, "Description: %s\n", req.VideoDescription)
	}
	if req.Language != "" {
		fmt.Fprintf(&sb, "Write the post in: %s\n", req.Language)
	}
	if len(req.Tags) > 0 {
		fmt.Fprintf(&sb, "Video tags: %s\n", strings.Join(req.Tags, ", "))
	}

	if len(req.Comments) > 0 {
		sb.WriteString("\n## Top comments (audience context)\n\n")
		// A handful is enough to convey what viewers cared about.
		comments := req.Comments
		if len(comments) > 10 {
			comments = comments[:10]
		}
		for _, c := range comments {
			fmt.Fprintf(&sb, "- %s\n", c)
		}
	}

	sb.WriteString("\n## Transcript\n\n")
	sb.WriteString(req.Transcript)

	sb.WriteString("\n\n## Task\n\nWrite a complete blog post based on this video: a compelling title, a full markdown body, a short summary, logical sections, 5-7 topical tags, an SEO meta description under 160 characters, and the key takeaways.")

	return blogSystemPrompt, sb.String()
}

func buildKeywordPrompt(content string) (system, user string) {
	return keywordSystemPrompt, fmt.Sprintf(
		"Extract 10-15 SEO keywords from the following blog post. Respond with a JSON object of the form {\"keywords\": [\"...\"]}.\n\n%s",
		content)
}

func buildSummaryPrompt(content string, maxLen int) (system, user string) {
	return summarySystemPrompt, fmt.Sprintf(
		"Summarize the following blog post in at most %d characters of plain text.\n\n%s",
		maxLen, content)
}
