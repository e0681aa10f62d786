package prompts

import "fmt"

// GetURLAnalysisPrompt asks the model to pull product facts out of page text.
func GetURLAnalysisPrompt(pageContent string) string {
	return fmt.Sprintf(`You are analyzing a webpage to extract product information for generating a landing page.

Given the webpage content below, extract:
1. productName - The name of the product/service/project
2. description - What it does in 1-2 sentences (clear and specific)
3. targetAudience - Who is this for? Be specific about the type of person/role
4. keyBenefit - The main outcome/value users get from using this
5. problem - What pain/problem does this solve? What's the "before" state?

Guidelines:
- Be specific, not generic. "Developers" is too broad. "Solo developers building SaaS" is better.
- For GitHub repos, focus on the README content and what the project actually does
- If information isn't explicit, make reasonable inferences based on context
- If something truly can't be determined, leave it as an empty string

Return ONLY valid JSON (no markdown, no explanation):
{
  "productName": "...",
  "description": "...",
  "targetAudience": "...",
  "keyBenefit": "...",
  "problem": "..."
}

WEBPAGE CONTENT:
%s`, pageContent)
}
