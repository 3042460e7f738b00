package model

import "time"

// AIStatus is the lifecycle state of a generative content post.
type AIStatus string

const (
	// AIStatusProcessing is set when the post row is created, before the
	// inference call has completed.
	AIStatusProcessing AIStatus = "processing"
	// AIStatusGenerated means captions and the enhanced image URL are
	// attached but the technician has not published a caption yet.
	AIStatusGenerated AIStatus = "generated"
	// AIStatusCompleted means a caption was selected and the post is
	// visible in the technician's portfolio.
	AIStatusCompleted AIStatus = "completed"
	// AIStatusFailed means the inference call failed after the raw upload
	// succeeded. The row is kept for manual cleanup.
	AIStatusFailed AIStatus = "failed"
)

// Post represents one generative-content submission: a raw upload, the
// inference result attached to it, and the caption published from it.
type Post struct {
	ID                string    `json:"id"`
	TechnicianID      string    `json:"technician_id"`
	CustomerID        *string   `json:"customer_id,omitempty"`
	BookingID         *string   `json:"booking_id,omitempty"`
	RawImageURL       string    `json:"raw_image_url"`
	EnhancedImageURL  string    `json:"enhanced_image_url,omitempty"`
	GeneratedCaptions []string  `json:"generated_captions,omitempty"`
	SelectedCaption   string    `json:"selected_caption,omitempty"`
	AIStatus          AIStatus  `json:"ai_status"`
	StyleTags         []string  `json:"style_tags,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
