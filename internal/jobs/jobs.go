// Package jobs holds the seeded demo job catalog. The catalog is static;
// applications reference it by ID but the record store does not own it.
package jobs

// Job describes one demo opening.
type Job struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Dept        string `json:"dept"`
	Level       string `json:"level"`
	MinYears    int    `json:"minYears"`
	Description string `json:"description"`
	IsOpen      bool   `json:"isOpen"`
}

var seed = []Job{
	{
		ID:          "1",
		Title:       "Frontend Engineer",
		Dept:        "tech",
		Level:       "junior",
		MinYears:    0,
		Description: "React/TS and design systems. Looking for a developer passionate about modern frontend tooling.",
		IsOpen:      true,
	},
	{
		ID:          "2",
		Title:       "Accountant",
		Dept:        "accounting",
		Level:       "mid",
		MinYears:    2,
		Description: "AR/AP and monthly closings, Excel. Experience with accounting systems expected.",
		IsOpen:      true,
	},
	{
		ID:          "3",
		Title:       "Administrative Officer",
		Dept:        "admin",
		Level:       "fresh",
		MinYears:    0,
		Description: "Office coordination and administrative support across departments.",
		IsOpen:      true,
	},
	{
		ID:          "4",
		Title:       "Maintenance Technician",
		Dept:        "operations",
		Level:       "mid",
		MinYears:    1,
		Description: "Facility upkeep and preventive maintenance. Safety-first mindset required.",
		IsOpen:      true,
	},
}

// List returns the full catalog.
func List() []Job {
	out := make([]Job, len(seed))
	copy(out, seed)
	return out
}

// Get returns the job with the given ID.
func Get(id string) (Job, bool) {
	for _, j := range seed {
		if j.ID == id {
			return j, true
		}
	}
	return Job{}, false
}

// Title resolves a job ID to its title, with a placeholder for unknown IDs.
func Title(id string) string {
	if j, ok := Get(id); ok {
		return j.Title
	}
	return "Unknown Position"
}
