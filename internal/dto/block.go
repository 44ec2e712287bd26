package dto

// ── block module DTOs ──

// CreateBlockRequest creates a dormitory block.
type CreateBlockRequest struct {
	Number int `json:"number" binding:"required,gte=0"`
}

// BlockResponse is the public view of a block.
type BlockResponse struct {
	ID     uint   `json:"id"`
	Number int    `json:"number"`
	Slug   string `json:"slug"`
}
