package resume

import (
	"slices"
	"strings"
)

// Record 是整条渲染管线消费的简历结构化数据。
type Record struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Skills       []Skill      `json:"skills"`
}

// PersonalInfo 描述个人信息，空字符串表示渲染时省略该字段。
type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website"`
	Summary  string `json:"summary"`
}

// Experience 表示一段工作经历。
// Current 仅作描述用途，不会改写 EndDate，模板原样展示 EndDate。
type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Education 表示一段教育经历。
type Education struct {
	ID          string `json:"id"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Skill 表示一项技能。Level 会被保存和校验，但当前所有模板都不展示它。
type Skill struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

// SkillLevel 是有序的熟练度枚举。
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "Beginner"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelAdvanced     SkillLevel = "Advanced"
	LevelExpert       SkillLevel = "Expert"
)

var levelRank = map[SkillLevel]int{
	LevelBeginner:     0,
	LevelIntermediate: 1,
	LevelAdvanced:     2,
	LevelExpert:       3,
}

// Valid reports whether l is one of the four known levels.
func (l SkillLevel) Valid() bool {
	_, ok := levelRank[l]
	return ok
}

// Rank returns the position of l in the ordered enumeration, or -1.
func (l SkillLevel) Rank() int {
	if r, ok := levelRank[l]; ok {
		return r
	}
	return -1
}

// Levels returns the known levels ordered from lowest to highest rank.
func Levels() []SkillLevel {
	out := make([]SkillLevel, 0, len(levelRank))
	for l := range levelRank {
		out = append(out, l)
	}
	slices.SortFunc(out, func(a, b SkillLevel) int { return a.Rank() - b.Rank() })
	return out
}

func levelChoices() string {
	names := make([]string, 0, len(levelRank))
	for _, l := range Levels() {
		names = append(names, string(l))
	}
	return strings.Join(names, ", ")
}

// Section 标识简历中可编辑的分区。
type Section string

const (
	SectionPersonal   Section = "personal"
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionSkills     Section = "skills"
)

// ParseSection 解析分区名，未知分区返回 ErrUnknownSection。
func ParseSection(s string) (Section, error) {
	switch Section(s) {
	case SectionPersonal, SectionExperience, SectionEducation, SectionSkills:
		return Section(s), nil
	default:
		return "", ErrUnknownSection
	}
}

// idPrefix returns the identifier prefix used for new entries of a list section.
func (s Section) idPrefix() string {
	switch s {
	case SectionExperience:
		return "exp"
	case SectionEducation:
		return "edu"
	case SectionSkills:
		return "skill"
	default:
		return ""
	}
}
