package mcq

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the generation prompt for count technical,
// project-specific questions. The strict variant additionally forbids names,
// titles, companies, dates, and durations; it is used on the single retry
// after a thin or malformed first batch.
func BuildPrompt(resumeContent string, count int, strict bool) string {
	extra := "Return ONLY raw JSON (no prose, no code fences)."
	if strict {
		extra = "Return ONLY raw JSON (no prose, no code fences). Do not mention names, job titles, company names, dates, or durations."
	}

	return strings.TrimSpace(fmt.Sprintf(`
Create %d **technical, project-specific** multiple-choice questions from the resume.

Rules:
- Every question MUST be about the tech stack, frameworks, libraries, databases, APIs, cloud, patterns, tooling, or architecture used **in a specific project described in the resume**.
- Include the **project's exact name** in the question text (e.g., "In the <Project Name> project, ...").
- DO NOT ask about personal details (name, email, phone, location), employment dates, durations/tenure, job titles, total years of experience, education, or company names.
- If an item would be personal/HR-style, SKIP it (do not invent facts).

Output format (JSON array only):
[
  {
    "question": "In the <Project Name> project, which database was used for <X>?",
    "option_a": "string",
    "option_b": "string",
    "option_c": "string",
    "option_d": "string",
    "correct_answer": "A"
  }
]

%s

Resume (tech-only view may be sanitized):
%s
`, count, extra, resumeContent))
}
