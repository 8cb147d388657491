package session

import (
	"fmt"
	"sync"
	"time"

	"skillyst/internal/export"
	"skillyst/internal/resume"
	"skillyst/internal/templates"
)

// Step 是编辑流程所处的阶段。
type Step string

const (
	StepTemplate Step = "template"
	StepEdit     Step = "edit"
	StepPreview  Step = "preview"
)

// Session 是一次编辑会话的全部应用状态：简历、模板、阶段和导出忙碌标记。
// 所有方法都是并发安全的。
type Session struct {
	ID        string
	CreatedAt time.Time

	guard export.Guard
	ids   resume.IDGenerator
	now   func() time.Time

	mu      sync.Mutex
	record  resume.Record
	variant templates.Variant
	step    Step
	touched time.Time
}

// Snapshot 是会话状态的只读副本。
type Snapshot struct {
	ID       string            `json:"id"`
	Record   resume.Record     `json:"resume"`
	Template templates.Variant `json:"template"`
	Step     Step              `json:"step"`
	Busy     bool              `json:"busy"`
}

func newSession(id string, ids resume.IDGenerator, now func() time.Time) *Session {
	t := now()
	return &Session{
		ID:        id,
		CreatedAt: t,
		ids:       ids,
		now:       now,
		record:    resume.Default(),
		variant:   templates.Modern,
		step:      StepTemplate,
		touched:   t,
	}
}

// Guard returns the export busy flag owned by this session.
func (s *Session) Guard() *export.Guard {
	return &s.guard
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:       s.ID,
		Record:   s.record.Clone(),
		Template: s.variant,
		Step:     s.step,
		Busy:     s.guard.Busy(),
	}
}

// Record returns a copy of the current resume together with the selected variant.
func (s *Session) Record() (resume.Record, templates.Variant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Clone(), s.variant
}

// SelectTemplate 选择模板并进入编辑阶段，未知标签回退到 Modern。
func (s *Session) SelectTemplate(tag string) templates.Variant {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.variant = templates.ParseVariant(tag)
	s.step = StepEdit
	s.touchLocked()
	return s.variant
}

func (s *Session) Preview() {
	s.setStep(StepPreview)
}

func (s *Session) BackToEdit() {
	s.setStep(StepEdit)
}

func (s *Session) setStep(step Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = step
	s.touchLocked()
}

func (s *Session) UpdatePersonal(field, value string) error {
	return s.apply(func(r resume.Record) (resume.Record, error) {
		return r.WithPersonalField(field, value)
	})
}

func (s *Session) UpdateField(section resume.Section, index int, field string, value any) error {
	return s.apply(func(r resume.Record) (resume.Record, error) {
		return r.UpdateField(section, index, field, value)
	})
}

// AddEntry appends a blank entry and returns its identifier.
func (s *Session) AddEntry(section resume.Section) (string, error) {
	var id string
	err := s.apply(func(r resume.Record) (resume.Record, error) {
		next, newID, err := r.AddEntry(section, s.ids)
		id = newID
		return next, err
	})
	return id, err
}

// RemoveEntry 按位置删除条目。位置到 ID 的映射在调用时从当前记录重新推导，
// expectedID 非空且不匹配时返回 resume.ErrStaleIndex，记录保持不变。
func (s *Session) RemoveEntry(section resume.Section, index int, expectedID string) error {
	return s.apply(func(r resume.Record) (resume.Record, error) {
		return r.RemoveAt(section, index, expectedID)
	})
}

func (s *Session) RemoveEntryByID(section resume.Section, id string) error {
	return s.apply(func(r resume.Record) (resume.Record, error) {
		return r.RemoveByID(section, id)
	})
}

// ReplaceRecord 导入一份完整简历，先按 JSON Schema 校验。
func (s *Session) ReplaceRecord(data []byte) error {
	rec, err := resume.DecodeJSON(data)
	if err != nil {
		return err
	}
	return s.apply(func(resume.Record) (resume.Record, error) {
		return rec, nil
	})
}

// ResetRecord restores the default seed.
func (s *Session) ResetRecord() {
	_ = s.apply(func(resume.Record) (resume.Record, error) {
		return resume.Default(), nil
	})
}

func (s *Session) apply(fn func(resume.Record) (resume.Record, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.record)
	if err != nil {
		return fmt.Errorf("session %s: %w", s.ID, err)
	}
	s.record = next
	s.touchLocked()
	return nil
}

func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
}

func (s *Session) touchLocked() {
	s.touched = s.now()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.touched)
}
