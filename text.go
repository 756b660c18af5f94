package main

type PersonalInfo struct {
	Name     string
	Title    string
	Tagline  string
	Email    string
	Phone    string
	Location string
	LinkedIn string
	GitHub   string
	Bio      string
	Roles    []string
}

type Skill struct {
	Name  string
	Level int
	Color string
}

type SkillGroup struct {
	Title  string
	Skills []Skill
}

type Project struct {
	ID           int
	Title        string
	Category     string
	Description  string
	Technologies []string
	GitHub       string
	Featured     bool
	Color        string
	Association  string
}

type Experience struct {
	ID           int
	Type         string
	Title        string
	Organization string
	Period       string
	Description  string
	Skills       []string
}

type Education struct {
	ID          int
	Degree      string
	Institution string
	Location    string
	Period      string
	Grade       string
	Status      string
}

type Achievement struct {
	ID           int
	Title        string
	Organization string
	Description  string
	Icon         string
}

type Responsibility struct {
	ID           int
	Role         string
	Organization string
	Description  string
}

type NavLink struct {
	ID    string
	Label string
}

var (
	personalInfo = PersonalInfo{
		Name:     "Arpit Lal",
		Title:    "Software Developer & ML Engineer",
		Tagline:  "Building Intelligent Systems with Machine Learning",
		Email:    "Sinhaarpit415@gmail.com",
		Phone:    "+91-7992289647",
		Location: "Punjab, India",
		LinkedIn: "https://www.linkedin.com/in/arpit-lal-506b07248/",
		GitHub:   "https://github.com/Akkissss23",
		Bio: `Final-year Electrical Engineering undergraduate with hands-on experience in Backend Development,
	Machine Learning, NLP, and Data Analysis. Built and deployed end-to-end ML pipelines for
	clustering, recommendation, and prediction problems. Proficient in DSA and backend development using
	Flask and Django. Seeking ML Engineer / SDE-1 roles in IT companies.`,
		Roles: []string{"Software Developer", "ML Engineer", "Data Scientist", "Problem Solver"},
	}

	skillGroups = []SkillGroup{
		{"Programming", []Skill{
			{"Python", 95, "#3776AB"},
			{"C/C++", 80, "#00599C"},
			{"SQL", 85, "#CC2927"},
		}},
		{"Machine Learning", []Skill{
			{"Scikit-learn", 90, "#F7931E"},
			{"TensorFlow", 85, "#FF6F00"},
			{"Keras", 85, "#D00000"},
			{"NLP", 88, "#8B5CF6"},
			{"Deep Learning", 82, "#059669"},
		}},
		{"Data Analysis", []Skill{
			{"Pandas", 92, "#150458"},
			{"NumPy", 90, "#013243"},
			{"Matplotlib", 88, "#11557C"},
			{"Seaborn", 85, "#4C72B0"},
		}},
		{"DevOps", []Skill{
			{"Git/GitHub", 88, "#F05032"},
			{"Docker", 78, "#2496ED"},
			{"GitHub Actions", 75, "#2088FF"},
			{"CI/CD", 80, "#4FC08D"},
		}},
		{"Embedded", []Skill{
			{"Arduino", 85, "#00979D"},
			{"Raspberry Pi", 82, "#A22846"},
			{"MATLAB", 80, "#0076A8"},
			{"EagleCAD", 75, "#CC0000"},
		}},
		{"Databases", []Skill{
			{"MySQL", 85, "#4479A1"},
		}},
	}

	projects = []Project{
		{
			ID:           1,
			Title:        "E-Tongue System",
			Category:     "Machine Learning",
			Description:  "Designed an Electronic Tongue system integrating hardware (sensors, circuitry) and software for data acquisition and analysis. Applied ML/DL techniques for pattern recognition and classification of sensor responses.",
			Technologies: []string{"EagleCAD", "MATLAB", "LabView", "Python", "Machine Learning", "Deep Learning"},
			Featured:     true,
			Color:        "#ff84e4",
			Association:  "NIT Patna Internship",
		},
		{
			ID:           2,
			Title:        "Stock Prediction System",
			Category:     "Deep Learning",
			Description:  "Built a stock price prediction pipeline using historical market data and ML/DL models. Implemented data fetching, preprocessing, model training, and visualization of predicted vs actual trends.",
			Technologies: []string{"yfinance", "Pandas", "Matplotlib", "Scikit-learn", "Keras"},
			GitHub:       "https://github.com/Akkissss23/Data-analysis-ML-Projects/blob/main/stock%20predictor%203.ipynb",
			Featured:     true,
			Color:        "#88a2ff",
		},
		{
			ID:           3,
			Title:        "Movie Recommendation System",
			Category:     "NLP",
			Description:  "Developed a movie recommender system leveraging NLP and similarity-based approaches. Processed movie metadata and plots to generate personalized recommendations for users.",
			Technologies: []string{"NumPy", "Pandas", "NLTK", "Scikit-learn", "Matplotlib"},
			GitHub:       "https://github.com/Akkissss23/Data-analysis-ML-Projects/tree/main/movie%20recommendation",
			Featured:     true,
			Color:        "#d987ff",
		},
		{
			ID:           4,
			Title:        "Fake News Detector",
			Category:     "NLP",
			Description:  "Implemented a text classification pipeline to detect fake news articles. Used TF-IDF features and Logistic Regression to achieve robust performance, evaluated via accuracy metrics.",
			Technologies: []string{"NLTK", "TfidfVectorizer", "LogisticRegression", "Pandas", "NumPy"},
			GitHub:       "https://github.com/Akkissss23/Data-analysis-ML-Projects/blob/main/fake%20news%202%20.ipynb",
			Featured:     true,
			Color:        "#ffe03d",
		},
		{
			ID:           5,
			Title:        "Customer Segmentation",
			Category:     "Machine Learning",
			Description:  "Performed unsupervised learning for customer segmentation using clustering algorithms. Evaluated clustering quality using Silhouette score, and visualized segments for business insights.",
			Technologies: []string{"Scikit-learn", "Pandas", "Seaborn", "Scipy", "K-Means"},
			GitHub:       "https://github.com/Akkissss23/Data-analysis-ML-Projects/blob/main/custermer%20segmentattion%201%20.ipynb",
			Featured:     true,
			Color:        "#78d692",
		},
		{
			ID:           6,
			Title:        "CI/CD Pipeline",
			Category:     "DevOps",
			Description:  "Designed a CI/CD pipeline to automate build, test, and deployment workflows. Integrated Docker and GitHub Actions/GitLab for streamlined DevOps processes.",
			Technologies: []string{"GitHub Actions", "Docker", "GitLab", "YAML"},
			GitHub:       "https://github.com/Akkissss23/CI-CD-Pipeline-Getting-Started",
			Featured:     true,
			Color:        "#ff965a",
		},
		{
			ID:           7,
			Title:        "Smart Autonomous Street Light",
			Category:     "Embedded Systems",
			Description:  "Worked on an autonomous street lighting system using sensor-based control and Raspberry Pi. Simulated and tested the circuit using Fritzing and Proteus to validate design.",
			Technologies: []string{"Python", "Fritzing", "Proteus", "Raspberry Pi 4"},
			Color:        "#b7fbff",
		},
	}

	experience = []Experience{
		{
			ID:           1,
			Type:         "internship",
			Title:        "Summer Intern - ML Research",
			Organization: "NIT Patna",
			Period:       "2024",
			Description:  "Designed and worked on an E-Tongue system integrating hardware (sensors, circuitry) and software for data acquisition and analysis. Applied ML/DL techniques for pattern recognition and classification of sensor responses.",
			Skills:       []string{"Python", "Machine Learning", "Deep Learning", "EagleCAD", "MATLAB"},
		},
	}

	education = []Education{
		{1, "B.E. Electrical Engineering", "Sant Longowal Institute of Engineering and Technology (SLIET)", "Longowal, Punjab", "2022 - 2026 (Expected)", "CGPA: 7.5", "Final Year"},
		{2, "XII (CBSE)", "Holy Mission Senior Secondary School", "Patna, Bihar", "March 2021", "75.4%", ""},
		{3, "X (CBSE)", "Loyola High School", "Patna, Bihar", "March 2019", "85.6%", ""},
	}

	achievements = []Achievement{
		{1, "Research Paper Selection", "IISc, Bangalore", "Review paper on White Dwarf Binary System and Binary Pulsars got selected.", "Award"},
		{2, "Techfest Winner", "IIT Roorkee", "Participated in Cognizance 2025 and Secured 1st Position in Robo Tug of War, 2nd Position in Truss, 4th Position LFR", "Trophy"},
		{3, "Techfest Participated", "IIT Roorkee", "Participated in Cognizance 2024 for RC Plan, Robo Soccer, RC Car events.", "Trophy"},
		{4, "Smart India Hackathon", "SIH", "Cleared the first round of SIH at college level.", "Code"},
		{5, "Youth Parliament Representative", "MIT WPU, Pune", "Represented NSS YP SLIET at 13th BCS assembly in January 2024.", "Users"},
	}

	responsibilities = []Responsibility{
		{1, "Convener (2024-2025)", "Endeavour (Robotics Team)", "Led and coordinated robotics activities, competitions, and team projects."},
		{2, "Co-ordinator (2025-2026)", "Sur & Rhythm (Music Band)", "Organized and managed band practices and performances for institute events."},
		{3, "Co-coordinator (2023-2024)", "Youth Parliament (NSS)", "Coordinated Youth Parliament activities under NSS, promoting student engagement and public speaking."},
	}

	navLinks = []NavLink{
		{"home", "Home"},
		{"about", "About"},
		{"skills", "Skills"},
		{"projects", "Projects"},
		{"experience", "Experience"},
		{"achievements", "Achievements"},
		{"contact", "Contact"},
	}
)

// featuredProjects keeps source order.
func featuredProjects() []Project {
	var out []Project
	for _, p := range projects {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}
