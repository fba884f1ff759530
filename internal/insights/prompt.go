package insights

import "fmt"

// BuildPrompt returns the instruction asking the model for a JSON-only
// analysis of industry.
func BuildPrompt(industry string) string {
	return fmt.Sprintf(`
Analyze the current state of the %s industry and provide insights in ONLY the following JSON format without any additional notes or explanations:
{
  "salaryRanges": [
    { "role": "string", "min": number, "max": number, "median": number, "location": "string" }
  ],
  "growthRate": number,
  "demandLevel": "High" | "Medium" | "Low",
  "topSkills": ["skill1", "skill2"],
  "marketOutlook": "Positive" | "Neutral" | "Negative",
  "keyTrends": ["trend1", "trend2"],
  "recommendedSkills": ["skill1", "skill2"]
}

IMPORTANT:
- Return ONLY valid JSON.
- No extra text, comments, or markdown.
- Include at least 5 common roles for salary ranges.
- Growth rate should be a percentage.
- Include at least 5 skills and trends.
`, industry)
}
