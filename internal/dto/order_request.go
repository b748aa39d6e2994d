package dto

type CreateOrderRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Requirements *string `json:"requirements"`
	Deadline     string  `json:"deadline"`
	Price        float64 `json:"price"`
	SourceFiles  []uint  `json:"sourceFiles"`
	VideoURL     *string `json:"videoUrl"`
}
