package ai

import (
	"fmt"
	"strings"
)

// Prompt texts mirror the portal's editorial voice. Structured tasks
// instruct the model to answer with raw JSON only; the normalizer still
// tolerates fenced output.

const chatSystemInstruction = `You are NexusMena AI, a specialized assistant for the NexusMena tech platform.
You have access to Global and Egyptian tech news, startups, events, and market data.
Your goal is to help users find information within the platform, summarize articles, or explain complex tech/financial concepts.
Be concise, professional, and helpful.
If provided with Context Data, prioritize that information.
Answer in the language the user speaks (English or Arabic).`

const podcastMetricNames = `o Depth of Information: Assess how thoroughly topics are covered.
o Technical Level: Determine the complexity and technicality of the content.
o Authenticity: Evaluate the credibility and reliability of the information presented.
o Speakers' Expertise: Judge the expertise of the speakers based on their statements.
o Contradictions: Identify any contradictions or inconsistencies in the content.
o Clarity: Assess how clearly the information is communicated.
o Engagement: Evaluate how engaging and interesting the podcast is.
o Relevance: Determine how relevant the content is to current events or your interests.
o Bias and Objectivity: Assess whether the podcast presents information in a balanced manner or if there is any noticeable bias.
o Practical Applications: Identify any practical tips or actionable advice provided.
o Pacing: Assess whether the podcast maintains a good pace or if it feels rushed or slow.
o Emotional Impact: Note any emotional responses elicited by the podcast.
o Originality: Evaluate the uniqueness of the content and perspectives offered.`

const podcastOutputSchema = `{
    "podcastName": "string",
    "episodeTitle": "string",
    "score": number,
    "summary": "string (A concise paragraph summarizing the key points)",
    "metrics": [
        { "name": "Depth of Information", "finding": "string" },
        { "name": "Technical Level", "finding": "string" },
        { "name": "Authenticity", "finding": "string" },
        { "name": "Speakers' Expertise", "finding": "string" },
        { "name": "Contradictions", "finding": "string" },
        { "name": "Clarity", "finding": "string" },
        { "name": "Engagement", "finding": "string" },
        { "name": "Relevance", "finding": "string" },
        { "name": "Bias and Objectivity", "finding": "string" },
        { "name": "Practical Applications", "finding": "string" },
        { "name": "Pacing", "finding": "string" },
        { "name": "Emotional Impact", "finding": "string" },
        { "name": "Originality", "finding": "string" },
        { "name": "Additional Metrics", "finding": "string (Optional)" }
    ],
    "recommendation": "string (Final recommendation and rating reasoning)"
}`

const discoveryOutputSchema = `{
    "title": "string",
    "description": "string",
    "source": "string",
    "specificUrl": "https://valid-link...",
    "date": "YYYY-MM-DD",
    "category": "string",
    "duration": "string",
    "summaryPoints": ["point 1", "point 2", "point 3"],
    "youtubeUrl": "string (optional)",
    "spotifyUrl": "string (optional)"
}`

const reviewOutputSchema = `{
    "improvedTitle": "string",
    "improvedDescription": "string",
    "feedback": "string"
}`

func buildSummaryPrompt(lang, text string) string {
	if lang == "ar" {
		return "لخّص النص التقني التالي في 3 نقاط رئيسية باللغة العربية:\n\n" + text
	}
	return "Summarize the following tech content into 3 concise bullet points:\n\n" + text
}

func buildTranslatePrompt(targetLang, text string) string {
	name := "English"
	if targetLang == "ar" {
		name = "Arabic"
	}
	return fmt.Sprintf("Translate the following text to %s. Keep technical terms accurate and maintain the formatting (Markdown tables, lists, etc):\n\n%s", name, text)
}

func buildMarketPrompt(dataContext string) string {
	return "You are a financial analyst specializing in Egyptian and Global tech markets. Analyze this data snapshot and give 2 sentences of insight:\n" + dataContext
}

func buildPodcastPrompt(url string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Please perform a comprehensive analysis of the following podcast: %s.\n\n", url)
	b.WriteString("I need you to:\n\n")
	b.WriteString("1. Summarize the key points and main themes of the podcast.\n\n")
	b.WriteString("2. Analyze the podcast based on the following metrics:\n\n")
	b.WriteString(podcastMetricNames)
	b.WriteString("\n\n3. Include any other relevant metrics that would help in evaluating the podcast.\n\n")
	b.WriteString("4. Present your analysis in a structured format suitable for a table.\n\n")
	b.WriteString("5. Provide a final recommendation on whether I should listen to the full podcast or if the summary suffices, along with an overall rating out of 10.\n\n")
	b.WriteString("**OUTPUT FORMAT**:\nYou must return a raw JSON object with this exact structure:\n")
	b.WriteString(podcastOutputSchema)
	return b.String()
}

func buildDiscoveryPrompt(url string) string {
	var b strings.Builder
	b.WriteString("You are an intelligent Content Scraper/Fetcher.\n\n")
	fmt.Fprintf(&b, "Target URL: %s\n\n", url)
	b.WriteString(`YOUR MISSION:
1. **ANALYZE URL**:
   - Is this a "Collection" (YouTube Channel, Podcast RSS, Blog Home)?
   - Or a "Specific Item" (Single Video, Article)?

2. **IF COLLECTION (e.g. YouTube Channel)**:
   - Use Google Search to find the **LATEST SPECIFIC VIDEO/EPISODE** from this channel that matches topics: "AI", "Tech", "Startups", or "Entrepreneurship".
   - **CRITICAL**: The 'specificUrl' field in your output MUST be the direct link to that single video (e.g., https://www.youtube.com/watch?v=XYZ), NOT the channel URL.

3. **IF SPECIFIC ITEM**: Use the provided URL as the 'specificUrl'.

4. **EXTRACT DETAILS**:
   - Title: Full title of the specific item.
   - Description: 2 sentence summary.
   - SummaryPoints: Extract 5 key takeaways or timestamps with topics.
   - Duration: Estimate duration (e.g. "25 min") if audio/video.
   - Date: YYYY-MM-DD.
   - Category: Suggest one of ['latest', 'startup', 'podcasts', 'events'].
   - youtubeUrl: If it's a YouTube link, repeat it here.
   - spotifyUrl: If found or known for this show, put it here.

5. **OUTPUT FORMAT**:
   Return ONLY a raw JSON string (no markdown formatting) with this structure:
`)
	b.WriteString(discoveryOutputSchema)
	return b.String()
}

func buildArticlePrompt(url string) string {
	return fmt.Sprintf(`Please access and read the article at the following URL: %s

Task:
1. Extract the full textual content of the article.
2. Return it formatted in clean Markdown.
3. Do not summarize. Provide the comprehensive details, headers, and sections as they appear in the original text.
4. If the content is very long, provide a highly detailed structured version that covers all information.

Output: Markdown text only.`, url)
}

func buildReviewPrompt(title, description, category string) string {
	var b strings.Builder
	b.WriteString("You are an expert editor for a Tech & Startup aggregator platform.\nReview the following content submission.\n\n")
	fmt.Fprintf(&b, "Input Data:\nTitle/Name: %s\nDescription: %s\nCategory: %s\n\n", title, description, category)
	b.WriteString(`1. Fix any grammar issues.
2. Make the title more catchy and professional.
3. Make the description concise and impactful (max 2 sentences).
4. Provide a brief feedback message explaining your changes.

Return ONLY a JSON object with this structure:
`)
	b.WriteString(reviewOutputSchema)
	return b.String()
}

// buildChatTurn annotates the user message with page context when present.
func buildChatTurn(message, contextData string) string {
	if strings.TrimSpace(contextData) == "" {
		return message
	}
	return fmt.Sprintf("[Context from current page: %s]\n\nUser Question: %s", contextData, message)
}

// truncateText bounds prompt payloads, counting runes not bytes.
func truncateText(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
