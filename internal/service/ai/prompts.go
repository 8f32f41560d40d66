package ai

import "fmt"

// Task identifies which AI helper is being invoked.
type Task string

const (
	TaskImprove    Task = "improve"
	TaskSummarize  Task = "summarize"
	TaskTags       Task = "tags"
	TaskStudyNotes Task = "study_notes"
)

func improvePrompt(content string) string {
	return fmt.Sprintf(`Please analyze the following text and provide writing improvements. Focus on:
1. Grammar and spelling corrections
2. Clarity and readability improvements
3. Style and tone suggestions
4. Structure and flow enhancements

Provide an improved version of the text with better grammar, clarity and style. Keep the original meaning and key points intact. Return ONLY the improved text with no explanations, no introductions, no "here is" statements, and no additional commentary.

Text to analyze:
%s`, content)
}

func summarizePrompt(content string) string {
	return fmt.Sprintf(`Please create a concise, well-structured summary of the following content. The summary should:
1. Capture all key points and main ideas
2. Be significantly shorter than the original
3. Use clear, professional language
4. Maintain logical flow and organization

Content to summarize:
%s

Provide a summary that is approximately 20-30%% of the original length while preserving all important information. Return ONLY the summary with no explanations, no introductions, no "here is" statements, and no additional commentary.`, content)
}

func tagsPrompt(content string) string {
	return fmt.Sprintf(`Analyze the following content and generate 5-8 relevant tags that best describe the topic, themes, and key concepts.

Guidelines:
- Use single words or short phrases (2-3 words max)
- Focus on main topics, subjects, and themes
- Include both specific and general tags
- Make tags useful for searching and organization
- Separate tags with commas

Content:
%s

Respond with only the tags separated by commas, no other text or formatting.`, content)
}

func studyNotesPrompt(extractedText string) string {
	return fmt.Sprintf(`You are a note-taking assistant. You must analyze the provided document text and create structured study notes following EXACTLY this format:

TITLE: [Write a specific, descriptive title based on the main topic/subject - NOT generic]

CONTENT:
[Your structured notes here using markdown formatting]

STRICT FORMATTING RULES:
1. Start with exactly "TITLE: " followed by the title
2. Then have a blank line
3. Then start with exactly "CONTENT:"
4. Use # for main headings and ## for subheadings
5. Use **bold** for key terms and definitions, *italic* for emphasis
6. Use - for bullet points and numbered lists for sequential steps
7. Include all formulas, equations, or code snippets exactly as shown,
   using fenced code blocks with a language tag
8. Define every technical term the first time it appears, as if the
   reader has never heard it before
9. Summarize complex concepts in simple terms and add context where
   needed so isolated points stand on their own

Now analyze this document text and follow the EXACT format above:

%s

Remember: Start with "TITLE: " and include "CONTENT:" exactly as shown.`, extractedText)
}
