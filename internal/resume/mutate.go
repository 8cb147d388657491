package resume

import (
	"fmt"
	"strconv"
)

// 所有变更方法都返回新的 Record，接收者本身不会被修改。

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := Record{PersonalInfo: r.PersonalInfo}
	if r.Experience != nil {
		out.Experience = append(make([]Experience, 0, len(r.Experience)), r.Experience...)
	}
	if r.Education != nil {
		out.Education = append(make([]Education, 0, len(r.Education)), r.Education...)
	}
	if r.Skills != nil {
		out.Skills = append(make([]Skill, 0, len(r.Skills)), r.Skills...)
	}
	return out
}

// Len returns the number of entries in a list section.
func (r Record) Len(section Section) (int, error) {
	switch section {
	case SectionExperience:
		return len(r.Experience), nil
	case SectionEducation:
		return len(r.Education), nil
	case SectionSkills:
		return len(r.Skills), nil
	default:
		return 0, ErrUnknownSection
	}
}

// IDAt returns the identifier of the entry at index, derived from the current record.
func (r Record) IDAt(section Section, index int) (string, error) {
	n, err := r.Len(section)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= n {
		return "", ErrIndexOutOfRange
	}
	switch section {
	case SectionExperience:
		return r.Experience[index].ID, nil
	case SectionEducation:
		return r.Education[index].ID, nil
	default:
		return r.Skills[index].ID, nil
	}
}

// IndexOf returns the position of the entry with the given id, or -1.
func (r Record) IndexOf(section Section, id string) int {
	n, err := r.Len(section)
	if err != nil {
		return -1
	}
	for i := 0; i < n; i++ {
		if got, _ := r.IDAt(section, i); got == id {
			return i
		}
	}
	return -1
}

// WithPersonalField 替换个人信息中的一个字段。
func (r Record) WithPersonalField(field, value string) (Record, error) {
	p := r.PersonalInfo
	switch field {
	case "name":
		p.Name = value
	case "title":
		p.Title = value
	case "email":
		p.Email = value
	case "phone":
		p.Phone = value
	case "location":
		p.Location = value
	case "website":
		p.Website = value
	case "summary":
		p.Summary = value
	default:
		return r, fmt.Errorf("personal field %q: %w", field, ErrUnknownField)
	}
	out := r.Clone()
	out.PersonalInfo = p
	return out, nil
}

// UpdateField 替换某个分区中第 index 个条目的字段。
// value 对布尔字段 current 可以是 bool 或可解析的字符串，其余字段必须是字符串。
func (r Record) UpdateField(section Section, index int, field string, value any) (Record, error) {
	if section == SectionPersonal {
		s, ok := value.(string)
		if !ok {
			return r, fmt.Errorf("personal field %q: %w", field, ErrInvalidValue)
		}
		return r.WithPersonalField(field, s)
	}

	n, err := r.Len(section)
	if err != nil {
		return r, err
	}
	if index < 0 || index >= n {
		return r, ErrIndexOutOfRange
	}

	out := r.Clone()
	switch section {
	case SectionExperience:
		err = setExperienceField(&out.Experience[index], field, value)
	case SectionEducation:
		err = setEducationField(&out.Education[index], field, value)
	case SectionSkills:
		err = setSkillField(&out.Skills[index], field, value)
	}
	if err != nil {
		return r, err
	}
	return out, nil
}

// AddEntry 在分区末尾追加一个空条目，标识由 ids 生成。
func (r Record) AddEntry(section Section, ids IDGenerator) (Record, string, error) {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	out := r.Clone()
	id := ids.NewID(section.idPrefix())
	switch section {
	case SectionExperience:
		out.Experience = append(out.Experience, Experience{ID: id})
	case SectionEducation:
		out.Education = append(out.Education, Education{ID: id})
	case SectionSkills:
		out.Skills = append(out.Skills, Skill{ID: id, Level: LevelIntermediate})
	default:
		return r, "", ErrUnknownSection
	}
	return out, id, nil
}

// RemoveAt 按位置删除条目。index 到 id 的映射在调用时基于当前 Record 重新推导；
// expectedID 非空且与该位置的条目不一致时返回 ErrStaleIndex，不做任何删除。
func (r Record) RemoveAt(section Section, index int, expectedID string) (Record, error) {
	id, err := r.IDAt(section, index)
	if err != nil {
		return r, err
	}
	if expectedID != "" && id != expectedID {
		return r, fmt.Errorf("%s[%d] is %q, want %q: %w", section, index, id, expectedID, ErrStaleIndex)
	}

	out := r.Clone()
	switch section {
	case SectionExperience:
		out.Experience = append(out.Experience[:index:index], out.Experience[index+1:]...)
	case SectionEducation:
		out.Education = append(out.Education[:index:index], out.Education[index+1:]...)
	case SectionSkills:
		out.Skills = append(out.Skills[:index:index], out.Skills[index+1:]...)
	}
	return out, nil
}

// RemoveByID 按标识删除条目。
func (r Record) RemoveByID(section Section, id string) (Record, error) {
	if _, err := r.Len(section); err != nil {
		return r, err
	}
	idx := r.IndexOf(section, id)
	if idx < 0 {
		return r, fmt.Errorf("%s %q: %w", section, id, ErrEntryNotFound)
	}
	return r.RemoveAt(section, idx, id)
}

func setExperienceField(e *Experience, field string, value any) error {
	if field == "current" {
		b, err := boolValue(value)
		if err != nil {
			return fmt.Errorf("experience field %q: %w", field, err)
		}
		e.Current = b
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("experience field %q: %w", field, ErrInvalidValue)
	}
	switch field {
	case "title":
		e.Title = s
	case "company":
		e.Company = s
	case "location":
		e.Location = s
	case "startDate":
		e.StartDate = s
	case "endDate":
		e.EndDate = s
	case "description":
		e.Description = s
	default:
		return fmt.Errorf("experience field %q: %w", field, ErrUnknownField)
	}
	return nil
}

func setEducationField(e *Education, field string, value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("education field %q: %w", field, ErrInvalidValue)
	}
	switch field {
	case "degree":
		e.Degree = s
	case "institution":
		e.Institution = s
	case "location":
		e.Location = s
	case "startDate":
		e.StartDate = s
	case "endDate":
		e.EndDate = s
	case "description":
		e.Description = s
	default:
		return fmt.Errorf("education field %q: %w", field, ErrUnknownField)
	}
	return nil
}

func setSkillField(sk *Skill, field string, value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("skill field %q: %w", field, ErrInvalidValue)
	}
	switch field {
	case "name":
		sk.Name = s
	case "level":
		level := SkillLevel(s)
		if !level.Valid() {
			return fmt.Errorf("skill level %q (want one of %s): %w", s, levelChoices(), ErrInvalidLevel)
		}
		sk.Level = level
	default:
		return fmt.Errorf("skill field %q: %w", field, ErrUnknownField)
	}
	return nil
}

func boolValue(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, ErrInvalidValue
		}
		return b, nil
	default:
		return false, ErrInvalidValue
	}
}
