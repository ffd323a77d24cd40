// Package dialog tracks the multi-step conversation state of the bot. The
// application is single-operator, so an in-memory map per chat is enough; a
// restart simply drops any half-finished flow.
package dialog

import "sync"

type State string

const StateIdle State = ""

type Payload map[string]any

type Conversation struct {
	State   State
	Payload Payload
}

type Repo struct {
	mu    sync.Mutex
	chats map[int64]*Conversation
}

func NewRepo() *Repo {
	return &Repo{chats: make(map[int64]*Conversation)}
}

func (r *Repo) Get(chatID int64) *Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.chats[chatID]; ok {
		return c
	}
	return &Conversation{State: StateIdle, Payload: Payload{}}
}

func (r *Repo) Set(chatID int64, st State, payload Payload) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if payload == nil {
		payload = Payload{}
	}
	r.chats[chatID] = &Conversation{State: st, Payload: payload}
}

func (r *Repo) Clear(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.chats, chatID)
}
