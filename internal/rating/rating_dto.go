package rating

type CreateRatingRequest struct {
	RateeID       string  `json:"ratee_id" binding:"required,uuid"`
	Month         int     `json:"month" binding:"required,min=1,max=12"`
	Year          int     `json:"year" binding:"required,min=2000,max=2100"`
	TeamworkScore float64 `json:"teamwork_score" binding:"min=0,max=10"`
	DeliveryScore float64 `json:"delivery_score" binding:"min=0,max=10"`
}

type RatingResponse struct {
	ID            string  `json:"id"`
	RaterID       string  `json:"rater_id"`
	RateeID       string  `json:"ratee_id"`
	RateeName     string  `json:"ratee_name,omitempty"`
	Month         int     `json:"month"`
	Year          int     `json:"year"`
	TeamworkScore float64 `json:"teamwork_score"`
	DeliveryScore float64 `json:"delivery_score"`
}

// MonthlyAverage aggregates the ratings received by one employee in a period.
type MonthlyAverage struct {
	RateeID        string  `json:"ratee_id"`
	RateeName      string  `json:"ratee_name,omitempty"`
	RatingCount    int     `json:"rating_count"`
	AvgTeamwork    float64 `json:"avg_teamwork"`
	AvgDelivery    float64 `json:"avg_delivery"`
	OverallAverage float64 `json:"overall_average"`
}
