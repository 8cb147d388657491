package resume

// Default 返回首次预览使用的示例简历。每次调用都返回一份独立的副本。
func Default() Record {
	return Record{
		PersonalInfo: PersonalInfo{
			Name:     "John Doe",
			Title:    "Software Engineer",
			Email:    "john.doe@email.com",
			Phone:    "(555) 123-4567",
			Location: "San Francisco, CA",
			Website:  "linkedin.com/in/johndoe",
			Summary:  "Experienced software engineer with 5+ years of experience in full-stack development. Passionate about creating efficient, scalable solutions and working with cutting-edge technologies.",
		},
		Experience: []Experience{
			{
				ID:          "exp-1",
				Title:       "Senior Software Engineer",
				Company:     "Tech Corp",
				Location:    "San Francisco, CA",
				StartDate:   "01/2022",
				EndDate:     "Present",
				Current:     true,
				Description: "Led development of microservices architecture serving 1M+ users. Implemented CI/CD pipelines reducing deployment time by 60%. Mentored junior developers and conducted code reviews.",
			},
			{
				ID:          "exp-2",
				Title:       "Software Engineer",
				Company:     "StartupXYZ",
				Location:    "San Francisco, CA",
				StartDate:   "06/2020",
				EndDate:     "12/2021",
				Description: "Developed full-stack web applications using React and Node.js. Collaborated with design team to implement responsive user interfaces. Optimized database queries improving performance by 40%.",
			},
		},
		Education: []Education{
			{
				ID:          "edu-1",
				Degree:      "Bachelor of Science in Computer Science",
				Institution: "University of California, Berkeley",
				Location:    "Berkeley, CA",
				StartDate:   "08/2016",
				EndDate:     "05/2020",
				Description: "Graduated Magna Cum Laude. Relevant coursework: Data Structures, Algorithms, Software Engineering, Database Systems.",
			},
		},
		Skills: []Skill{
			{ID: "skill-1", Name: "JavaScript", Level: LevelExpert},
			{ID: "skill-2", Name: "React", Level: LevelExpert},
			{ID: "skill-3", Name: "Node.js", Level: LevelAdvanced},
			{ID: "skill-4", Name: "Python", Level: LevelAdvanced},
			{ID: "skill-5", Name: "SQL", Level: LevelAdvanced},
			{ID: "skill-6", Name: "AWS", Level: LevelIntermediate},
			{ID: "skill-7", Name: "Docker", Level: LevelIntermediate},
			{ID: "skill-8", Name: "Git", Level: LevelExpert},
		},
	}
}
