package blog

type CreateBlogRequest struct {
	Title     []string `json:"title" binding:"required"`
	Text      []string `json:"text" binding:"required"`
	Images    []string `json:"images"`
	Published *bool    `json:"published"`
}

type UpdateBlogRequest struct {
	Title     *[]string `json:"title"`
	Text      *[]string `json:"text"`
	Images    *[]string `json:"images"`
	Published *bool     `json:"published"`
}
