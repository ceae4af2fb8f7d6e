package directory

import (
	"arogya-backend/internal/catalog"
)

// Doctor is derived, never stored: the same location always generates the
// same list. IDs are 1-based within a location's list, so two locations can
// both have a doctor 7 with unrelated attributes.
type Doctor struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Specialty     string   `json:"specialty"`
	Clinic        string   `json:"clinic"`
	Address       string   `json:"address"`
	Available     bool     `json:"available"`
	AvailableDays []string `json:"availableDays"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	Fee           int      `json:"fee"`
	Experience    int      `json:"experience"`
	Image         string   `json:"image"`
	WaitTime      int      `json:"waitTime"`
}

var clinics = []string{
	"Apollo Hospital",
	"Max Healthcare",
	"Fortis Hospital",
	"AIIMS",
	"Narayana Health",
	"Medanta Hospital",
	"Columbia Asia Hospital",
	"Manipal Hospital",
	"Tata Memorial Hospital",
	"Ruby Hall Clinic",
	"Kokilaben Hospital",
	"Hinduja Hospital",
	"Lilavati Hospital",
	"Christian Medical College",
	"Care Hospitals",
	"BLK Super Speciality Hospital",
	"Wockhardt Hospital",
	"Jaslok Hospital",
	"Artemis Hospital",
	"Sir Ganga Ram Hospital",
}

var surnames = []string{
	"Sharma", "Patel", "Singh", "Verma", "Gupta",
	"Kumar", "Iyer", "Rao", "Mehta", "Deshpande",
	"Choudhury", "Joshi", "Desai", "Reddy", "Shah",
	"Chatterjee", "Nair", "Prasad", "Menon", "Bose",
	"Chakraborty", "Patil", "Banerjee", "Kapoor", "Khanna",
}

var firstNames = []string{
	"Dr. Arjun", "Dr. Vikram", "Dr. Priya", "Dr. Neha", "Dr. Raj",
	"Dr. Sanjay", "Dr. Meera", "Dr. Amit", "Dr. Anjali", "Dr. Rahul",
	"Dr. Sunita", "Dr. Kiran", "Dr. Deepak", "Dr. Anil", "Dr. Shikha",
}

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// spreadPrime gives consecutive ids well-separated attribute indexes.
const spreadPrime = 9973

// Generate derives the doctor list for a location. Total over its input:
// a well-formed location always yields between 10 and 24 doctors.
func Generate(loc catalog.Location) []Doctor {
	seed := loc.Seed()
	count := 10 + seed%15

	doctors := make([]Doctor, 0, count)
	for id := 1; id <= count; id++ {
		doctors = append(doctors, generateDoctor(loc, seed, id))
	}
	return doctors
}

func generateDoctor(loc catalog.Location, seed, id int) Doctor {
	rv := (seed + id) * spreadPrime

	return Doctor{
		ID:            id,
		Name:          firstNames[(rv/1000)%len(firstNames)] + " " + surnames[(rv/100)%len(surnames)],
		Specialty:     Specialties[rv%len(Specialties)].Name,
		Clinic:        clinics[(rv/10)%len(clinics)],
		Address:       loc.Area + ", " + loc.District + ", " + loc.State,
		Available:     rv%5 != 0,
		AvailableDays: availableDays(rv),
		Rating:        3.5 + float64(rv%20)/10,
		Reviews:       10 + rv%200,
		Fee:           500 + (rv%10)*200,
		Experience:    2 + rv%20,
		Image:         "/placeholder.svg",
		WaitTime:      5 + rv%60,
	}
}

// availableDays picks 3 to 6 consecutive weekdays starting at a seeded
// offset. The selection is deterministic so repeated generations agree.
func availableDays(rv int) []string {
	numDays := 3 + rv%4
	start := (rv / 10000) % len(weekdays)

	days := make([]string, 0, numDays)
	for i := 0; i < numDays; i++ {
		days = append(days, weekdays[(start+i)%len(weekdays)])
	}
	return days
}

// FilterBySpecialty keeps doctors with an exact specialty match. An empty
// specialty keeps everything.
func FilterBySpecialty(doctors []Doctor, specialty string) []Doctor {
	if specialty == "" {
		return doctors
	}
	filtered := make([]Doctor, 0, len(doctors))
	for _, d := range doctors {
		if d.Specialty == specialty {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// RecommendationPool selects candidates for a suggested specialty: doctors
// of that specialty plus General Physicians. Some suggested specialties are
// never generated, so an empty pool falls back to the whole list and a
// recommendation always has candidates.
func RecommendationPool(doctors []Doctor, specialty string) []Doctor {
	pool := make([]Doctor, 0, len(doctors))
	for _, d := range doctors {
		if d.Specialty == specialty || d.Specialty == "General Physician" {
			pool = append(pool, d)
		}
	}
	if len(pool) == 0 {
		return doctors
	}
	return pool
}

// ByID finds a doctor in a generated list by its 1-based id.
func ByID(doctors []Doctor, id int) (Doctor, bool) {
	for _, d := range doctors {
		if d.ID == id {
			return d, true
		}
	}
	return Doctor{}, false
}
