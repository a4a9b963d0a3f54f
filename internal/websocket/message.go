package websocket

import "encoding/json"

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewArticleMessage builds a feed message for an article lifecycle action
// ("article_created", "article_updated", "article_deleted").
func NewArticleMessage(action string, payload interface{}) []byte {
	data, err := json.Marshal(Message{Action: action, Payload: payload})
	if err != nil {
		return nil
	}
	return data
}

// NewErrorMessage builds an error message for a single client.
func NewErrorMessage(msg string) []byte {
	data, _ := json.Marshal(Message{Action: "error", Payload: msg})
	return data
}
