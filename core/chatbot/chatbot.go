// Package chatbot is the scripted learning assistant.
package chatbot

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

const (
	Greeting = "Hi! I'm your THK Learning Assistant. How can I help you today?"
	fallback = "I'm not sure I understood. Ask me about courses, prices, enrolling, mentors, teaching or the community blog, or type \"help\"."
)

type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"` // UTC
}

func newMessage(role Role, text string) Message {
	return Message{ID: uuid.New().String(), Role: role, Text: text, Timestamp: time.Now().UTC()}
}

type rule struct {
	keywords []string
	reply    string
}

// Bot answers with the reply of the first rule having a keyword in the message.
type Bot struct {
	rules []rule
}

func NewBot() *Bot {
	return &Bot{rules: []rule{
		{[]string{"hello", " hi ", " hey", "xin chào"}, "Hello! What would you like to learn today?"},
		{[]string{"price", "cost", "pay", "how much"}, "Course prices are shown on each course card. Checkout accepts any card in this demo and no money is charged."},
		{[]string{"enroll", "join", "register", "sign up"}, "Open a course from Explore and press \"Enroll Now\". Enrolled courses are listed under My Courses."},
		{[]string{"course", "learn", "class"}, "Browse the catalog in Explore Courses. You can filter by category or search by title."},
		{[]string{"mentor", "instructor", "teacher"}, "Our mentors are listed on the home page. Open a profile to see their courses and certificates."},
		{[]string{"teach", "apply", "faculty"}, "Want to teach? Use \"Apply to Teach\" in the sidebar and our faculty committee will review your application."},
		{[]string{"blog", "community", "post"}, "Join the discussion on the Community Blog: ask questions, share knowledge and like posts."},
		{[]string{"help", "support"}, "I can help with courses, prices, enrolling, mentors, teaching and the community blog."},
	}}
}

// Reply returns the scripted answer to text.
func (b *Bot) Reply(text string) string {
	t := " " + strings.ToLower(strings.TrimSpace(text)) + " "
	for _, r := range b.rules {
		for _, kw := range r.keywords {
			if strings.Contains(t, kw) {
				return r.reply
			}
		}
	}
	return fallback
}

// Conversation is the transcript of one session, opened with the greeting.
type Conversation struct {
	mu       sync.Mutex
	messages []Message
}

func NewConversation() *Conversation {
	return &Conversation{messages: []Message{newMessage(RoleModel, Greeting)}}
}

// Send appends text and the reply of bot to the transcript, and returns the reply.
func (c *Conversation) Send(bot *Bot, text string) Message {
	in := newMessage(RoleUser, strings.TrimSpace(text))
	out := newMessage(RoleModel, bot.Reply(text))

	c.mu.Lock()
	c.messages = append(c.messages, in, out)
	c.mu.Unlock()
	return out
}

// Messages returns a copy of the transcript, oldest first.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.messages...)
}
