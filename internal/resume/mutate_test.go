package resume

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID(prefix string) string {
	s.n++
	return prefix + "-" + strings.Repeat("x", s.n)
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	b := Default()
	a.Experience[0].Title = "changed"
	if b.Experience[0].Title == "changed" {
		t.Fatalf("Default shares backing arrays between calls")
	}
	if len(b.Skills) != 8 || len(b.Experience) != 2 || len(b.Education) != 1 {
		t.Fatalf("unexpected seed shape: %d skills, %d exp, %d edu", len(b.Skills), len(b.Experience), len(b.Education))
	}
}

func TestUpdateField_DoesNotMutateReceiver(t *testing.T) {
	rec := Default()
	out, err := rec.UpdateField(SectionExperience, 1, "endDate", "Present")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Experience[1].EndDate != "12/2021" {
		t.Fatalf("receiver mutated: %q", rec.Experience[1].EndDate)
	}
	if out.Experience[1].EndDate != "Present" {
		t.Fatalf("update not applied: %q", out.Experience[1].EndDate)
	}
	// current is descriptive only and leaves endDate alone
	out, err = out.UpdateField(SectionExperience, 1, "current", "false")
	if err != nil {
		t.Fatalf("update current: %v", err)
	}
	if out.Experience[1].EndDate != "Present" || out.Experience[1].Current {
		t.Fatalf("unexpected entry after current=false: %+v", out.Experience[1])
	}
}

func TestUpdateField_Errors(t *testing.T) {
	rec := Default()
	cases := []struct {
		name    string
		section Section
		index   int
		field   string
		value   any
		want    error
	}{
		{"unknown field", SectionEducation, 0, "gpa", "4.0", ErrUnknownField},
		{"out of range", SectionSkills, 8, "name", "Go", ErrIndexOutOfRange},
		{"negative index", SectionSkills, -1, "name", "Go", ErrIndexOutOfRange},
		{"bad level", SectionSkills, 0, "level", "Guru", ErrInvalidLevel},
		{"bad bool", SectionExperience, 0, "current", "maybe", ErrInvalidValue},
		{"non string", SectionEducation, 0, "degree", 12, ErrInvalidValue},
		{"unknown section", Section("hobbies"), 0, "name", "x", ErrUnknownSection},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := rec.UpdateField(tc.section, tc.index, tc.field, tc.value)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v got %v", tc.want, err)
			}
		})
	}
}

func TestWithPersonalField(t *testing.T) {
	rec, err := Default().WithPersonalField("phone", "")
	if err != nil {
		t.Fatalf("update phone: %v", err)
	}
	if rec.PersonalInfo.Phone != "" {
		t.Fatalf("phone not cleared")
	}
	if _, err := rec.WithPersonalField("age", "40"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField got %v", err)
	}
}

func TestAddEntry_AppendsWithGeneratedID(t *testing.T) {
	ids := &seqIDs{}
	rec := Default()
	out, id, err := rec.AddEntry(SectionSkills, ids)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if id != "skill-x" {
		t.Fatalf("unexpected id %q", id)
	}
	last := out.Skills[len(out.Skills)-1]
	if last.ID != id || last.Level != LevelIntermediate || last.Name != "" {
		t.Fatalf("unexpected new skill %+v", last)
	}
	if len(rec.Skills) != 8 {
		t.Fatalf("receiver grew to %d", len(rec.Skills))
	}
	if _, _, err := rec.AddEntry(SectionPersonal, ids); !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection got %v", err)
	}
}

func TestUUIDGenerator_Unique(t *testing.T) {
	seen := map[string]struct{}{}
	gen := UUIDGenerator{}
	for i := 0; i < 1000; i++ {
		id := gen.NewID("exp")
		if !strings.HasPrefix(id, "exp-") {
			t.Fatalf("missing prefix: %q", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestRemoveAt_PreservesOrder(t *testing.T) {
	rec := Default()
	out, err := rec.RemoveAt(SectionSkills, 1, "")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	got := make([]string, 0, len(out.Skills))
	for _, s := range out.Skills {
		got = append(got, s.ID)
	}
	want := "skill-1,skill-3,skill-4,skill-5,skill-6,skill-7,skill-8"
	if strings.Join(got, ",") != want {
		t.Fatalf("order mismatch: %v", got)
	}
	if len(rec.Skills) != 8 || rec.Skills[1].ID != "skill-2" {
		t.Fatalf("receiver mutated")
	}
}

func TestRemoveAt_RejectsStaleIndex(t *testing.T) {
	rec := Default()
	// a concurrent removal shifted exp-2 into position 0
	shifted, err := rec.RemoveAt(SectionExperience, 0, "exp-1")
	if err != nil {
		t.Fatalf("first remove: %v", err)
	}
	_, err = shifted.RemoveAt(SectionExperience, 0, "exp-1")
	if !errors.Is(err, ErrStaleIndex) {
		t.Fatalf("expected ErrStaleIndex got %v", err)
	}
	if len(shifted.Experience) != 1 || shifted.Experience[0].ID != "exp-2" {
		t.Fatalf("stale removal mutated record: %+v", shifted.Experience)
	}
}

func TestRemoveByID(t *testing.T) {
	rec := Default()
	out, err := rec.RemoveByID(SectionEducation, "edu-1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(out.Education) != 0 {
		t.Fatalf("expected no education left")
	}
	if _, err := out.RemoveByID(SectionEducation, "edu-1"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound got %v", err)
	}
}

func TestDecodeJSON(t *testing.T) {
	data, err := json.Marshal(Default())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	rec, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.PersonalInfo.Name != "John Doe" || len(rec.Skills) != 8 {
		t.Fatalf("unexpected record %+v", rec.PersonalInfo)
	}

	bad := strings.Replace(string(data), `"level":"Expert"`, `"level":"Guru"`, 1)
	if _, err := DecodeJSON([]byte(bad)); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema got %v", err)
	}

	missing := `{"personalInfo":{"name":"A"},"experience":[],"education":[],"skills":[]}`
	if _, err := DecodeJSON([]byte(missing)); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema for missing personal fields got %v", err)
	}
}

func TestSkillLevelRank(t *testing.T) {
	if !(LevelBeginner.Rank() < LevelIntermediate.Rank() &&
		LevelIntermediate.Rank() < LevelAdvanced.Rank() &&
		LevelAdvanced.Rank() < LevelExpert.Rank()) {
		t.Fatalf("levels out of order")
	}
	if SkillLevel("Guru").Rank() != -1 {
		t.Fatalf("unknown level ranked")
	}
}

func TestInvalidLevelListsChoicesInRankOrder(t *testing.T) {
	want := []SkillLevel{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}
	if got := Levels(); !slices.Equal(got, want) {
		t.Fatalf("Levels()=%v", got)
	}
	_, err := Default().UpdateField(SectionSkills, 0, "level", "Guru")
	if !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
	if !strings.Contains(err.Error(), "Beginner, Intermediate, Advanced, Expert") {
		t.Fatalf("choices missing from %q", err.Error())
	}
}
