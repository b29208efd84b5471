package disease

// Disease is one entry of the disease information library.
type Disease struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Symptoms    []string `json:"symptoms"`
	Description string   `json:"description"`
	Treatments  []string `json:"treatments"`
	Prevention  []string `json:"prevention"`
	Severity    string   `json:"severity"`
}

const AllCategories = "All"

// Categories lists the library filters in display order.
func Categories() []string {
	return []string{AllCategories, "Cardiovascular", "Metabolic", "Mental Health", "Respiratory", "Eye Health"}
}

// Seed provides the built-in library entries.
func Seed() []Disease {
	return []Disease{
		{
			ID:          "type-2-diabetes",
			Name:        "Type 2 Diabetes",
			Category:    "Metabolic",
			Symptoms:    []string{"Increased thirst", "Frequent urination", "Blurred vision", "Fatigue", "Slow healing wounds"},
			Description: "A chronic condition that affects the way your body processes blood sugar (glucose).",
			Treatments:  []string{"Lifestyle modifications", "Metformin", "Insulin therapy", "Regular monitoring"},
			Prevention:  []string{"Healthy diet", "Regular exercise", "Weight management", "Regular checkups"},
			Severity:    "Moderate to High",
		},
		{
			ID:          "coronary-heart-disease",
			Name:        "Coronary Heart Disease",
			Category:    "Cardiovascular",
			Symptoms:    []string{"Chest pain", "Shortness of breath", "Fatigue", "Heart palpitations", "Dizziness"},
			Description: "A disease in which plaque builds up inside the coronary arteries.",
			Treatments:  []string{"Lifestyle changes", "Medications", "Angioplasty", "Bypass surgery"},
			Prevention:  []string{"Heart-healthy diet", "Regular exercise", "No smoking", "Stress management"},
			Severity:    "High",
		},
		{
			ID:          "hypertension",
			Name:        "Hypertension",
			Category:    "Cardiovascular",
			Symptoms:    []string{"Often no symptoms", "Headaches", "Nosebleeds", "Shortness of breath", "Chest pain"},
			Description: "High blood pressure that can lead to serious health complications if untreated.",
			Treatments:  []string{"ACE inhibitors", "Diuretics", "Beta blockers", "Lifestyle modifications"},
			Prevention:  []string{"Low sodium diet", "Regular exercise", "Limit alcohol", "Maintain healthy weight"},
			Severity:    "Moderate to High",
		},
		{
			ID:          "depression",
			Name:        "Depression",
			Category:    "Mental Health",
			Symptoms:    []string{"Persistent sadness", "Loss of interest", "Fatigue", "Sleep disturbances", "Concentration issues"},
			Description: "A mood disorder causing persistent feelings of sadness and loss of interest.",
			Treatments:  []string{"Psychotherapy", "Antidepressants", "Lifestyle changes", "Support groups"},
			Prevention:  []string{"Regular exercise", "Social connections", "Stress management", "Adequate sleep"},
			Severity:    "Moderate to High",
		},
		{
			ID:          "asthma",
			Name:        "Asthma",
			Category:    "Respiratory",
			Symptoms:    []string{"Wheezing", "Shortness of breath", "Chest tightness", "Coughing", "Difficulty breathing"},
			Description: "A condition in which airways narrow and swell, making breathing difficult.",
			Treatments:  []string{"Inhalers", "Bronchodilators", "Corticosteroids", "Allergy management"},
			Prevention:  []string{"Avoid triggers", "Regular medication", "Air quality awareness", "Vaccination"},
			Severity:    "Moderate",
		},
		{
			ID:          "glaucoma",
			Name:        "Glaucoma",
			Category:    "Eye Health",
			Symptoms:    []string{"Gradual vision loss", "Eye pain", "Headaches", "Nausea", "Rainbow halos around lights"},
			Description: "A group of eye conditions that damage the optic nerve, often due to high eye pressure.",
			Treatments:  []string{"Eye drops", "Oral medications", "Laser therapy", "Surgery"},
			Prevention:  []string{"Regular eye exams", "Protect eyes from injury", "Exercise regularly", "Healthy diet"},
			Severity:    "Moderate to High",
		},
	}
}
