package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"skillyst/internal/resume"
)

var ErrNotFound = errors.New("session not found")

// Store 在内存中保存会话，进程退出即丢失。过期清理在 Create 时惰性执行。
type Store struct {
	ttl     time.Duration
	ids     resume.IDGenerator
	now     func() time.Time
	onEvict func(id string)

	mu       sync.Mutex
	sessions map[string]*Session
}

type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides how entry identifiers are generated.
func WithIDGenerator(ids resume.IDGenerator) Option {
	return func(s *Store) { s.ids = ids }
}

// WithEvictHook 注册会话被删除或过期时的回调（例如清理对象存储中的导出文件）。
func WithEvictHook(fn func(id string)) Option {
	return func(s *Store) { s.onEvict = fn }
}

func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		ttl:      ttl,
		ids:      resume.UUIDGenerator{},
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create 清理过期会话后创建一个以默认简历为初始数据的新会话。
func (s *Store) Create() *Session {
	s.Sweep(s.now())

	sess := newSession(uuid.NewString(), s.ids, s.now)
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get 返回会话并刷新其活跃时间。已过期但尚未清理的会话视为不存在。
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok || s.expired(sess, s.now()) {
		return nil, ErrNotFound
	}
	sess.touch()
	return sess, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	s.evicted(id)
	return nil
}

// Sweep 删除空闲超过 TTL 的会话并返回它们的 ID。正在导出的会话不会被清理。
func (s *Store) Sweep(now time.Time) []string {
	var removed []string
	s.mu.Lock()
	for id, sess := range s.sessions {
		if s.expired(sess, now) && !sess.guard.Busy() {
			delete(s.sessions, id)
			removed = append(removed, id)
		}
	}
	s.mu.Unlock()

	for _, id := range removed {
		s.evicted(id)
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && sess.idleSince(now) > s.ttl
}

func (s *Store) evicted(id string) {
	if s.onEvict != nil {
		s.onEvict(id)
	}
}
