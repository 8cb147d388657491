package templates

import (
	"strings"
	"unicode/utf8"

	"skillyst/internal/resume"
)

// view 是模板实际消费的数据，空字段已在这里归一化，模板只做 if 判断。
type view struct {
	Name       string
	Title      string
	Summary    string
	Initial    string
	Contacts   []contact
	Experience []entry
	Education  []entry
	Skills     []string
}

type contact struct {
	Label string
	Value string
}

type entry struct {
	Heading     string
	Org         string
	Location    string
	Dates       string
	Description string
}

func newView(rec resume.Record) view {
	p := rec.PersonalInfo
	v := view{
		Name:    p.Name,
		Title:   p.Title,
		Summary: p.Summary,
	}
	if r, _ := utf8.DecodeRuneInString(strings.TrimSpace(p.Name)); r != utf8.RuneError {
		v.Initial = string(r)
	}

	for _, c := range []contact{
		{Label: "Email", Value: p.Email},
		{Label: "Phone", Value: p.Phone},
		{Label: "Location", Value: p.Location},
		{Label: "Website", Value: p.Website},
	} {
		if c.Value != "" {
			v.Contacts = append(v.Contacts, c)
		}
	}

	for _, e := range rec.Experience {
		v.Experience = append(v.Experience, entry{
			Heading:     e.Title,
			Org:         e.Company,
			Location:    e.Location,
			Dates:       dateRange(e.StartDate, e.EndDate),
			Description: e.Description,
		})
	}
	for _, e := range rec.Education {
		v.Education = append(v.Education, entry{
			Heading:     e.Degree,
			Org:         e.Institution,
			Location:    e.Location,
			Dates:       dateRange(e.StartDate, e.EndDate),
			Description: e.Description,
		})
	}
	for _, s := range rec.Skills {
		v.Skills = append(v.Skills, s.Name)
	}
	return v
}

// dateRange 原样拼接起止日期，不做解析和排序。
func dateRange(start, end string) string {
	if start == "" && end == "" {
		return ""
	}
	return start + " - " + end
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
