package host

import (
	"encoding/json"
	"fmt"
)

// MessageType identifies a WebSocket message.
type MessageType string

const (
	// MessageRoute is sent by the client when its route information
	// changes externally (address bar edit, back/forward).
	MessageRoute MessageType = "route"

	// MessagePop is sent by the client when the platform requests a page
	// dismissal (back gesture, hardware back).
	MessagePop MessageType = "pop"

	// MessagePopResult is sent by the host in response to MessagePop and
	// carries whether the pop was accepted.
	MessagePopResult MessageType = "pop_result"

	// MessageStack is pushed by the host after every stack mutation.
	MessageStack MessageType = "stack"

	// MessageError reports a host-side failure for a client message.
	MessageError MessageType = "error"
)

// Message is the JSON envelope exchanged over the WebSocket.
type Message struct {
	Type MessageType `json:"type"`

	// Route fields (MessageRoute).
	Location string   `json:"location,omitempty"`
	State    []string `json:"state,omitempty"`

	// Pop fields (MessagePop / MessagePopResult).
	Name     string `json:"name,omitempty"`
	Result   any    `json:"result,omitempty"`
	Accepted bool   `json:"accepted,omitempty"`

	// Stack fields (MessageStack).
	Pages    []PageInfo `json:"pages,omitempty"`
	CanClose bool       `json:"canClose,omitempty"`

	// Error fields (MessageError).
	Error string `json:"error,omitempty"`
}

// PageInfo is the wire representation of one stack entry.
type PageInfo struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// EncodeMessage serializes a message for the wire.
func EncodeMessage(msg Message) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("host: encoding %s message: %w", msg.Type, err)
	}
	return data, nil
}

// DecodeMessage deserializes a wire message, rejecting unknown types.
func DecodeMessage(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, fmt.Errorf("host: decoding message: %w", err)
	}
	switch msg.Type {
	case MessageRoute, MessagePop, MessagePopResult, MessageStack, MessageError:
		return msg, nil
	default:
		return Message{}, fmt.Errorf("host: unknown message type %q", msg.Type)
	}
}
