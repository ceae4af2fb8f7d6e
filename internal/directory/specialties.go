package directory

type Specialty struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// Specialties is the fixed set a generated doctor can carry. Triage can
// additionally suggest specialties outside this list; those fall back to
// General Physician when filtering the directory.
var Specialties = []Specialty{
	{ID: "Cardiologist", Name: "Cardiologist", Icon: "❤️", Description: "Heart specialists treating cardiovascular conditions"},
	{ID: "Dermatologist", Name: "Dermatologist", Icon: "🧬", Description: "Skin, hair and nail specialists"},
	{ID: "Neurologist", Name: "Neurologist", Icon: "🧠", Description: "Brain and nervous system specialists"},
	{ID: "Orthopedic", Name: "Orthopedic", Icon: "🦴", Description: "Bone and joint specialists"},
	{ID: "Pediatrician", Name: "Pediatrician", Icon: "👶", Description: "Child health specialists"},
	{ID: "Psychiatrist", Name: "Psychiatrist", Icon: "🧘", Description: "Mental health specialists"},
	{ID: "Gynecologist", Name: "Gynecologist", Icon: "👩", Description: "Women's health specialists"},
	{ID: "Ophthalmologist", Name: "Ophthalmologist", Icon: "👁️", Description: "Eye specialists"},
	{ID: "General Physician", Name: "General Physician", Icon: "🩺", Description: "Primary healthcare providers"},
}

func IsKnownSpecialty(name string) bool {
	for _, s := range Specialties {
		if s.Name == name {
			return true
		}
	}
	return false
}
