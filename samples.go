package courser

import "github.com/siherrmann/courser/model"

// sampleCatalog returns the built-in sample courses used to bootstrap an
// empty catalog. Fresh instances on every call, inserting mutates the course.
func sampleCatalog() []*model.Course {
	return []*model.Course{
		{
			Code:        "CS101",
			Title:       "Introduction to Programming",
			Description: "Fundamentals of programming with Python: variables, control flow, functions and basic data structures.",
			Department:  "Computer Science",
			Level:       model.LevelBeginner,
			Credits:     6,
			Instructor:  "Dr. Maria Santos",
			Category:    "programming",
			Tags:        []string{"python", "programming"},
		},
		{
			Code:          "CS201",
			Title:         "Data Structures and Algorithms",
			Description:   "Lists, trees, hash tables and graphs, with algorithm analysis and implementation practice in Python.",
			Department:    "Computer Science",
			Level:         model.LevelIntermediate,
			Credits:       6,
			Instructor:    "Dr. James Wong",
			Category:      "programming",
			Tags:          []string{"algorithms", "python"},
			Prerequisites: []string{"CS101"},
		},
		{
			Code:        "DS150",
			Title:       "Introduction to Data Science",
			Description: "The data science workflow end to end: data collection, cleaning, exploration and visualization with Python.",
			Department:  "Data Science",
			Level:       model.LevelBeginner,
			Credits:     6,
			Instructor:  "Dr. Aisha Patel",
			Category:    "data",
			Tags:        []string{"data science", "python", "statistics"},
		},
		{
			Code:          "DS250",
			Title:         "Machine Learning Fundamentals",
			Description:   "Supervised and unsupervised learning: regression, classification, clustering and model evaluation.",
			Department:    "Data Science",
			Level:         model.LevelIntermediate,
			Credits:       8,
			Instructor:    "Dr. Aisha Patel",
			Category:      "data",
			Tags:          []string{"machine learning", "python", "data science"},
			Prerequisites: []string{"DS150"},
		},
		{
			Code:        "DB210",
			Title:       "Database Systems",
			Description: "Relational modeling, SQL, transactions and indexing, with hands-on PostgreSQL labs.",
			Department:  "Computer Science",
			Level:       model.LevelIntermediate,
			Credits:     6,
			Instructor:  "Dr. Elena Fischer",
			Category:    "data",
			Tags:        []string{"sql", "databases"},
		},
		{
			Code:          "ML400",
			Title:         "Deep Learning",
			Description:   "Neural networks from the ground up: backpropagation, convolutional and recurrent architectures, training at scale.",
			Department:    "Data Science",
			Level:         model.LevelAdvanced,
			Credits:       8,
			Instructor:    "Dr. James Wong",
			Category:      "data",
			Tags:          []string{"machine learning", "neural networks"},
			Prerequisites: []string{"DS250"},
		},
		{
			Code:        "ST110",
			Title:       "Statistics for Scientists",
			Description: "Probability, distributions, hypothesis testing and regression for empirical work.",
			Department:  "Mathematics",
			Level:       model.LevelBeginner,
			Credits:     5,
			Instructor:  "Dr. Tomas Eriksen",
			Category:    "math",
			Tags:        []string{"statistics"},
		},
		{
			Code:        "WD120",
			Title:       "Web Development Basics",
			Description: "Building interactive web applications with HTML, CSS and JavaScript.",
			Department:  "Computer Science",
			Level:       model.LevelBeginner,
			Credits:     5,
			Instructor:  "Dr. Maria Santos",
			Category:    "programming",
			Tags:        []string{"web development", "javascript"},
		},
	}
}
