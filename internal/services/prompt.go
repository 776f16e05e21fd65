package services

import (
	"fmt"
	"unicode/utf8"
)

// maxResumeChars bounds how much resume text is embedded in the prompt so a
// very long document cannot overflow the model's input window.
const maxResumeChars = 40000

const defaultPreamble = `You are an expert career coach and ATS (Applicant Tracking System) specialist.
Analyze the candidate's resume against the job description below.`

type PromptBuilder struct {
	preamble string
}

// NewPromptBuilder creates a builder. An empty preamble selects the built-in
// analysis instructions.
func NewPromptBuilder(preamble string) *PromptBuilder {
	if preamble == "" {
		preamble = defaultPreamble
	}
	return &PromptBuilder{preamble: preamble}
}

// BuildAnalysisPrompt assembles the single instruction string sent to the
// model. It is pure: identical inputs always produce an identical prompt.
// The labeled layout it asks for is the only contract the response parser
// has with the model, and it is informal — the model is not forced to honor it.
func (pb *PromptBuilder) BuildAnalysisPrompt(resumeText, jobDescription string) string {
	if len(resumeText) > maxResumeChars {
		// Cut back to a rune boundary so the truncation never splits a
		// multi-byte character.
		cut := maxResumeChars
		for cut > 0 && !utf8.RuneStart(resumeText[cut]) {
			cut--
		}
		resumeText = resumeText[:cut]
	}

	return fmt.Sprintf(`%s

Resume:
%s

Job Description:
%s

Perform a focused, practical analysis of the resume against the job description:
1. Identify specific similarities and differences in skills, experience, and keywords.
2. Calculate an overall match percentage between 0 and 100.
3. Score the most relevant skills for this job from 0 to 100 based on the resume.
4. If the match is below 60%%, recommend specific topics to study; if 60%% or higher,
   focus on interview preparation tips and targeted resume improvements.
5. Write a cover letter based on the resume and job description.
6. Check the resume for ATS formatting issues and highlight any problems.

Structure your response exactly as follows, keeping every label on its own line:

Match Percentage: <number>%%

ATS Formatting Check:
<your assessment of ATS compatibility>

Suggestions:
- <first suggestion>
- <second suggestion>

Skills Match: {"<skill>": <score 0-100>, "<skill>": <score 0-100>}

Cover Letter:
<the full cover letter>`,
		pb.preamble, resumeText, jobDescription)
}
