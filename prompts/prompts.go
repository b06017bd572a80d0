package prompts

import (
	"encoding/json"
	"strings"

	"news-verifier/models"
)

// FewShotExamples are the canonical demonstrations shown to the model
var FewShotExamples = []models.FewShotExample{
	{
		Text:        "Government passes new tax reform to help small businesses.",
		Label:       models.LabelReal,
		Explanation: "Reliable reporting, cites official finance ministry release.",
		Sources:     []string{"https://example.com/official-release"},
	},
	{
		Text:        "Aliens land in downtown Manhattan, government confirms.",
		Label:       models.LabelFake,
		Explanation: "No credible sources; sensational wording and no official release.",
		Sources:     []string{},
	},
}

// VerifierPrompt is the instruction template for news verification.
// {few_shot_examples} and {news_text} are substituted by BuildPrompt.
const VerifierPrompt = `You are a news verifier. Given a short news text, answer whether the news is REAL or FAKE.
Return a JSON object only (no extra commentary) with the following keys:
- label: "REAL" or "FAKE"
- confidence: a float between 0.0 and 1.0
- explanation: one-sentence reasoning
- sources: list of up to 3 URLs (strings). If none found, return an empty list.


Examples:
{few_shot_examples}


Now evaluate this news item and respond with JSON only:


News: "{news_text}"


Output (JSON):`

// BuildPrompt renders the verifier prompt for a news text
func BuildPrompt(newsText string, useFewShot bool) string {
	fewShot := ""
	if useFewShot {
		fewShot = FewShotBlock()
	}
	// Single pass so placeholder-like text inside the news is left alone
	r := strings.NewReplacer(
		"{few_shot_examples}", fewShot,
		"{news_text}", newsText,
	)
	return r.Replace(VerifierPrompt)
}

// FewShotBlock serializes the few-shot examples as indented JSON
func FewShotBlock() string {
	out, err := json.MarshalIndent(FewShotExamples, "", "  ")
	if err != nil {
		// static data, cannot fail
		return ""
	}
	return string(out)
}
