package store

import "sync"

// Key scopes cached transcripts to one conversation. Thread-less chats key on
// the chat identifier alone (ThreadID stays 0).
type Key struct {
	ChatID   int64
	ThreadID int64
}

// NewKey derives the conversation key for a chat and optional thread.
func NewKey(chatID, threadID int64) Key {
	return Key{ChatID: chatID, ThreadID: threadID}
}

// TranscriptStore keeps the last successful transcription per conversation so
// a summary can be regenerated without re-uploading the media. Entries are
// overwritten on every successful transcription and live for the process
// lifetime; with the small conversation counts this service handles, the
// unbounded map is acceptable.
type TranscriptStore struct {
	mu sync.RWMutex
	m  map[Key]string
}

// New creates an empty TranscriptStore. The store is owned by the composition
// root and injected into whatever needs it.
func New() *TranscriptStore {
	return &TranscriptStore{m: make(map[Key]string)}
}

// Put records the last transcription for a conversation, replacing any
// previous one.
func (s *TranscriptStore) Put(k Key, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[k] = text
}

// Get returns the cached transcription for a conversation, if any.
func (s *TranscriptStore) Get(k Key) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.m[k]
	return text, ok
}
