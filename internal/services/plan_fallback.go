package services

import (
  "fmt"
)

// SynthesizePlan deterministically derives a complete plan document from the
// same constraints that would be sent to the external model. It is total and
// always passes ValidatePlanShape, which is what lets the pipeline promise a
// usable plan even under total external failure. Durations are fixed
// fractional splits of the timeline with per-step floors; steps 2, 4 and 5
// are milestones.
func SynthesizePlan(c PathConstraints) map[string]any {
  weeks := c.TimelineWeeks

  return map[string]any{
    "title":       fmt.Sprintf("Learning Path for %s", c.CareerGoal),
    "description": fmt.Sprintf("A comprehensive learning journey from %s to professional level in %s. Focuses on %s with %d hours per week over %d weeks.", c.CurrentLevel, c.CareerGoal, c.Interests, c.WeeklyHours, c.TimelineWeeks),
    "steps": []any{
      map[string]any{
        "step_number":    1,
        "title":          "Foundation and Basics",
        "description":    fmt.Sprintf("Learn the fundamental concepts and principles of %s. Build a strong foundation for advanced topics.", c.CareerGoal),
        "duration_weeks": maxInt(2, weeks/6),
        "milestone":      false,
        "resources": []any{
          map[string]any{
            "title":       "Introduction to Fundamentals",
            "url":         "https://example.com/fundamentals",
            "type":        "course",
            "description": "Comprehensive course covering basic concepts",
          },
        },
      },
      map[string]any{
        "step_number":    2,
        "title":          "Core Skills Development",
        "description":    "Develop essential skills and techniques through hands-on practice and projects.",
        "duration_weeks": maxInt(3, weeks/4),
        "milestone":      true,
        "resources": []any{
          map[string]any{
            "title":       "Core Skills Workshop",
            "url":         "https://example.com/core-skills",
            "type":        "tutorial",
            "description": "Interactive workshop for skill development",
          },
        },
      },
      map[string]any{
        "step_number":    3,
        "title":          "Advanced Techniques",
        "description":    "Master advanced concepts and specialized techniques in your chosen field.",
        "duration_weeks": maxInt(3, weeks/4),
        "milestone":      false,
        "resources": []any{
          map[string]any{
            "title":       "Advanced Concepts Guide",
            "url":         "https://example.com/advanced",
            "type":        "book",
            "description": "In-depth guide to advanced topics",
          },
        },
      },
      map[string]any{
        "step_number":    4,
        "title":          "Real-world Projects",
        "description":    "Apply your skills to real-world projects and build a portfolio.",
        "duration_weeks": maxInt(2, weeks/6),
        "milestone":      true,
        "resources": []any{
          map[string]any{
            "title":       "Project Ideas Repository",
            "url":         "https://example.com/projects",
            "type":        "project",
            "description": "Collection of project ideas and templates",
          },
        },
      },
      map[string]any{
        "step_number":    5,
        "title":          "Professional Development",
        "description":    "Prepare for professional opportunities and career advancement.",
        "duration_weeks": maxInt(2, weeks/6),
        "milestone":      true,
        "resources": []any{
          map[string]any{
            "title":       "Career Preparation Guide",
            "url":         "https://example.com/career",
            "type":        "article",
            "description": "Guide to professional development and job search",
          },
        },
      },
    },
    "milestones": []any{
      "Complete foundation understanding",
      "Develop core practical skills",
      "Build portfolio projects",
      "Prepare for professional opportunities",
    },
  }
}

func maxInt(a, b int) int {
  if a > b {
    return a
  }
  return b
}
