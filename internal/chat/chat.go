package chat

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser  Role = "USER"
	RoleModel Role = "MODEL"
)

// ParseRole maps a stored string to a Role. Unknown values resolve to
// RoleModel so a corrupted row never impersonates the user.
func ParseRole(s string) Role {
	if Role(s) == RoleUser {
		return RoleUser
	}
	return RoleModel
}

// MaxHistory is the number of messages retained in the conversation log.
const MaxHistory = 10

// MaxMessageLength caps a single user message.
const MaxMessageLength = 500

// WelcomeText is the assistant message seeded into an empty conversation.
const WelcomeText = "Hello! I'm your Sous Chef. Ask me about storage tips, cooking times, or substitutions!"

// Message is one entry in the chat conversation log.
type Message struct {
	ID        string
	Role      Role
	Text      string
	Timestamp time.Time
}
