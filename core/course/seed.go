package course

// Seed is the demo catalog loaded at start-up.
var Seed = []Course{
	{ID: "1", Title: "Advanced React Patterns", Instructor: "Dr. Sarah Connor", Category: "Development", Price: 99.99, Students: 450, Rating: 4.8, Image: "https://picsum.photos/id/1/400/250", Description: "Master modern React concepts including hooks, context, and performance optimization."},
	{ID: "2", Title: "Creative Writing Masterclass", Instructor: "Maya Angelou", Category: "Arts", Price: 79.99, Students: 800, Rating: 4.9, Image: "https://picsum.photos/id/2/400/250", Description: "Unlock your creativity and learn to write compelling stories."},
	{ID: "3", Title: "Data Science Fundamentals", Instructor: "Dr. Sarah Connor", Category: "Data Science", Price: 129.99, Students: 300, Rating: 4.6, Image: "https://picsum.photos/id/3/400/250", Description: "An introduction to Python, Pandas, and data visualization."},
	{ID: "4", Title: "Dinosaur Biology", Instructor: "Prof. Alan Grant", Category: "Science", Price: 59.99, Students: 150, Rating: 4.7, Image: "https://picsum.photos/id/4/400/250", Description: "Explore the fascinating world of prehistoric creatures."},
}
