package domain

// FreelancerSummary is the public listing view of an available freelancer.
// AverageRating is the mean of the freelancer's review ratings and nil when
// there are no reviews.
type FreelancerSummary struct {
	ID            uint
	Name          string
	Image         *string
	Bio           *string
	Skills        []string
	HourlyRate    *float64
	AverageRating *float64
	ReviewCount   int
}
