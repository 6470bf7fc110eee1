package mentor

import "github.com/trezcool/thk/core/user"

// Seed is the demo mentor list loaded at start-up.
var Seed = []Mentor{
	{
		ID:            "1",
		Name:          "Dr. Sarah Connor",
		Email:         "sarah@thk.edu",
		Expertise:     []string{"AI", "Machine Learning", "Python"},
		Rating:        4.9,
		TotalStudents: 1200,
		Status:        user.StatusActive,
		Avatar:        "https://picsum.photos/id/64/100/100",
		Title:         "Lead AI Research Scientist",
		Company:       "Skynet Labs",
		Bio:           "Dr. Connor has over 15 years of experience in Artificial Intelligence and Neural Networks. She holds a Ph.D. from MIT and has published over 30 papers in top-tier journals.",
		Certificates:  []string{"Ph.D. Computer Science", "Google AI Fellow", "Turing Award Nominee"},
	},
	{
		ID:            "2",
		Name:          "Prof. Alan Grant",
		Email:         "alan@thk.edu",
		Expertise:     []string{"Paleontology", "Biology", "History"},
		Rating:        4.7,
		TotalStudents: 850,
		Status:        user.StatusActive,
		Avatar:        "https://picsum.photos/id/65/100/100",
		Title:         "Senior Paleontologist",
		Company:       "InGen Corp",
		Bio:           "Prof. Grant is a world-renowned expert in evolutionary biology and paleontology. He specializes in the study of prehistoric ecosystems.",
		Certificates:  []string{"Ph.D. Paleontology", "National Science Foundation Grantee", "Author of \"Dinosaur Detectives\""},
	},
	{
		ID:            "3",
		Name:          "Maya Angelou",
		Email:         "maya@thk.edu",
		Expertise:     []string{"Literature", "Creative Writing", "Poetry"},
		Rating:        5.0,
		TotalStudents: 2000,
		Status:        user.StatusInactive,
		Avatar:        "https://picsum.photos/id/66/100/100",
		Title:         "Distinguished Professor of Arts",
		Company:       "Global Arts Foundation",
		Bio:           "Maya is a celebrated poet, memoirist, and civil rights activist. Her classes explore the power of voice, identity, and narrative structure.",
		Certificates:  []string{"Presidential Medal of Freedom", "Pulitzer Prize Nominee", "Grammy Award Winner"},
	},
}
