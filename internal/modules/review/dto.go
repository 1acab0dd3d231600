package review

type CreateRatingRequest struct {
	TourID  int64  `json:"tour_id" binding:"required"`
	Stars   int    `json:"stars" binding:"required"`
	Comment string `json:"comment"`
}
