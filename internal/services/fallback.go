package services

import (
	"fmt"

	"github.com/learnsphere/learnsphere-backend/internal/types"
)

// fallbackCandidates is the fixed slate substituted when the course index is
// unreachable after all retries. Ratings and review counts are chosen so the
// slate still produces a meaningful ranking downstream.
func fallbackCandidates(goal string) []types.Course {
	return []types.Course{
		{
			Name:        fmt.Sprintf("Introduction to %s", goal),
			Provider:    "Coursera",
			Institution: "University of Michigan",
			DirectLink:  "https://www.coursera.org/learn/python",
			Description: fmt.Sprintf("Learn the fundamentals of %s programming.", goal),
			Workload:    "10-15 hours",
			StartDate:   "On-Demand",
			Pricing:     types.PricingFreeNoCert,
			NumCourses:  "1 course",
			Subject:     "Programming",
			Level:       "Beginner",
			Rating:      4.5,
			NumReviews:  1000,
		},
		{
			Name:        fmt.Sprintf("%s for Everybody", goal),
			Provider:    "Udemy",
			DirectLink:  "https://www.udemy.com/course/python-for-everybody",
			Description: fmt.Sprintf("Comprehensive %s course for all skill levels.", goal),
			Workload:    "20 hours",
			StartDate:   "On-Demand",
			Pricing:     types.PricingPaidCert,
			NumCourses:  "1 course",
			Subject:     "Programming",
			Level:       "Intermediate",
			Rating:      4.7,
			NumReviews:  500,
		},
		{
			Name:        fmt.Sprintf("%s Programming", goal),
			Provider:    "edX",
			Institution: "MIT",
			DirectLink:  "https://www.edx.org/course/introduction-to-python",
			Description: fmt.Sprintf("Advanced %s programming concepts.", goal),
			Workload:    "15-20 hours",
			StartDate:   "On-Demand",
			Pricing:     types.PricingPaidCert,
			NumCourses:  "1 course",
			Subject:     "Programming",
			Level:       "Advanced",
			Rating:      4.8,
			NumReviews:  300,
		},
		{
			Name:        fmt.Sprintf("Learn %s the Hard Way", goal),
			Provider:    "freeCodeCamp",
			DirectLink:  "https://www.freecodecamp.org/learn",
			Description: fmt.Sprintf("Practical %s course with hands-on exercises.", goal),
			Workload:    "25 hours",
			StartDate:   "On-Demand",
			Pricing:     types.PricingFreeNoCert,
			NumCourses:  "1 course",
			Subject:     "Programming",
			Level:       "Beginner",
			Rating:      4.6,
			NumReviews:  400,
		},
		{
			Name:        fmt.Sprintf("%s Nanodegree", goal),
			Provider:    "Udacity",
			DirectLink:  "https://www.udacity.com/course/python-nanodegree",
			Description: fmt.Sprintf("Project-based %s learning for professionals.", goal),
			Workload:    "30 hours",
			StartDate:   "On-Demand",
			Pricing:     types.PricingPaidCert,
			NumCourses:  "1 course",
			Subject:     "Programming",
			Level:       "Intermediate",
			Rating:      4.9,
			NumReviews:  200,
		},
	}
}
