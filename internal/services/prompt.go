package services

import (
  "fmt"
)

// PathConstraints carries the caller-validated user inputs through the
// pipeline. Identity is passed explicitly; nothing here reads session state.
type PathConstraints struct {
  CareerGoal    string
  CurrentLevel  string
  Interests     string
  WeeklyHours   int
  TimelineWeeks int
}

// PathPrompt is the opaque generation request handed to the external client.
type PathPrompt struct {
  System string
  User   string
}

const pathPromptSystem = "You are an expert career coach and learning path designer. Create structured, practical learning roadmaps. Always respond with valid JSON format."

// BuildPathPrompt turns user constraints into the generation request: a
// natural-language instruction plus a worked example of the expected output
// shape. Pure transformation, no failure modes.
func BuildPathPrompt(c PathConstraints) PathPrompt {
  user := fmt.Sprintf(`Create a detailed, personalized learning roadmap for someone who wants to become a %s.

USER PROFILE:
- Current Skill Level: %s
- Interests: %s
- Weekly Study Hours: %d
- Timeline: %d weeks

REQUIREMENTS:
Generate a structured learning path with 6-12 steps that progressively build skills.
Include milestones to mark significant achievements.
For each step, suggest 2-3 learning resources (courses, books, tutorials, projects).

OUTPUT FORMAT (JSON):
{
    "title": "Comprehensive Learning Path for [Career Goal]",
    "description": "Detailed description of the learning journey",
    "steps": [
        {
            "step_number": 1,
            "title": "Step title",
            "description": "Detailed learning objectives and outcomes",
            "duration_weeks": 2,
            "milestone": false,
            "resources": [
                {
                    "title": "Resource title",
                    "url": "https://example.com",
                    "type": "course/video/article/book",
                    "description": "Why this resource is valuable"
                }
            ]
        }
    ],
    "milestones": [
        "List of major achievements throughout the path"
    ]
}

Make the path realistic for the given timeline and weekly hours. Focus on practical, hands-on learning.`,
    c.CareerGoal, c.CurrentLevel, c.Interests, c.WeeklyHours, c.TimelineWeeks)

  return PathPrompt{System: pathPromptSystem, User: user}
}
