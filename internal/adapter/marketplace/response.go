package marketplace

// Question is a buyer question as returned by the questions search API.
type Question struct {
	ID                 int64        `json:"id"`
	SellerID           int64        `json:"seller_id"`
	ItemID             string       `json:"item_id"`
	Text               string       `json:"text"`
	Status             string       `json:"status"`
	DateCreated        string       `json:"date_created"`
	DeletedFromListing bool         `json:"deleted_from_listing"`
	Hold               bool         `json:"hold"`
	Answer             *ReplyDetail `json:"answer"`
	From               *Asker       `json:"from,omitempty"`
}

// ReplyDetail is the seller answer embedded in a question.
type ReplyDetail struct {
	Text        string `json:"text"`
	Status      string `json:"status"`
	DateCreated string `json:"date_created"`
}

// Asker identifies the buyer who asked.
type Asker struct {
	ID int64 `json:"id"`
}

// IsOpen reports whether the question still needs a reply.
func (q Question) IsOpen() bool {
	return q.Answer == nil && !q.DeletedFromListing
}

type searchResponse struct {
	Total     int        `json:"total"`
	Limit     int        `json:"limit"`
	Questions []Question `json:"questions"`
}

// Item is the subset of listing details the dashboard stores.
type Item struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Price             float64 `json:"price"`
	CurrencyID        string  `json:"currency_id"`
	AvailableQuantity int     `json:"available_quantity"`
	Permalink         string  `json:"permalink"`
	Thumbnail         string  `json:"thumbnail"`
}

type answerRequest struct {
	QuestionID int64  `json:"question_id"`
	Text       string `json:"text"`
}
