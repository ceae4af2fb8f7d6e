package triage

import (
	"fmt"
	"strings"
)

// Match is the outcome of analyzing free-text symptoms. Confidence is a 0-1
// heuristic; Analyze is total and always returns a usable match.
type Match struct {
	Specialty  string  `json:"specialty"`
	Confidence float64 `json:"confidence"`
}

const (
	// Winners below minConfidence fall back to a General Physician.
	minConfidence = 0.3
	maxConfidence = 0.95

	DefaultSpecialty  = "General Physician"
	defaultConfidence = 0.5
)

type specialtyKeywords struct {
	symptoms   []string
	specialty  string
	confidence float64
}

var symptomTable = []specialtyKeywords{
	{
		symptoms:   []string{"fever", "cough", "cold", "sore throat", "headache", "flu", "body pain"},
		specialty:  "General Physician",
		confidence: 0.8,
	},
	{
		symptoms:   []string{"chest pain", "shortness of breath", "palpitations", "high blood pressure", "heart", "dizziness"},
		specialty:  "Cardiologist",
		confidence: 0.9,
	},
	{
		symptoms:   []string{"rash", "acne", "skin", "itching", "skin infection", "mole", "hair loss"},
		specialty:  "Dermatologist",
		confidence: 0.85,
	},
	{
		symptoms:   []string{"headache", "migraine", "seizure", "memory loss", "tremor", "balance", "numbness"},
		specialty:  "Neurologist",
		confidence: 0.85,
	},
	{
		symptoms:   []string{"joint pain", "fracture", "bone", "back pain", "knee pain", "muscle", "sprain"},
		specialty:  "Orthopedic",
		confidence: 0.9,
	},
	{
		symptoms:   []string{"ear", "nose", "throat", "sinus", "hearing loss", "tonsil", "voice hoarse"},
		specialty:  "ENT Specialist",
		confidence: 0.85,
	},
	{
		symptoms:   []string{"eye", "vision", "glasses", "red eye", "blurry vision", "eye pain", "cataract"},
		specialty:  "Ophthalmologist",
		confidence: 0.9,
	},
	{
		symptoms:   []string{"pregnancy", "menstrual", "vaginal", "ovary", "uterus", "breast pain"},
		specialty:  "Gynecologist",
		confidence: 0.95,
	},
	{
		symptoms:   []string{"depression", "anxiety", "stress", "insomnia", "mood", "panic", "mental health"},
		specialty:  "Psychiatrist",
		confidence: 0.8,
	},
	{
		symptoms:   []string{"breathing", "cough", "asthma", "tuberculosis", "pneumonia", "lung"},
		specialty:  "Pulmonologist",
		confidence: 0.85,
	},
	{
		symptoms:   []string{"diabetes", "thyroid", "hormone", "weight gain", "growth", "metabolism"},
		specialty:  "Endocrinologist",
		confidence: 0.85,
	},
	{
		symptoms:   []string{"kidney", "urinary", "bladder", "prostate", "urine", "testicular"},
		specialty:  "Urologist",
		confidence: 0.9,
	},
	{
		symptoms:   []string{"stomach", "digestion", "diarrhea", "constipation", "abdominal pain", "vomiting", "nausea"},
		specialty:  "Gastroenterologist",
		confidence: 0.85,
	},
	{
		symptoms:   []string{"child", "infant", "baby", "vaccination", "growth", "development"},
		specialty:  "Pediatrician",
		confidence: 0.9,
	},
}

// IsKnownSpecialty reports whether the matcher can suggest the named
// specialty. The table is wider than the generated directory.
func IsKnownSpecialty(name string) bool {
	if name == DefaultSpecialty {
		return true
	}
	for _, entry := range symptomTable {
		if entry.specialty == name {
			return true
		}
	}
	return false
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\r', ',', ';', '.', '!', '?':
			return true
		}
		return false
	})
}

// Analyze matches symptom text against the keyword table. Each table entry
// scores by the number of distinct keywords hit by any token (keyword inside
// token or token inside keyword), confidence = base * hits/3 capped at 0.95.
// Weak winners collapse to the General Physician default.
func Analyze(text string) Match {
	words := tokenize(text)

	best := Match{}
	for _, entry := range symptomTable {
		matched := make(map[string]bool)
		for _, word := range words {
			if len(word) < 3 {
				continue
			}
			for _, symptom := range entry.symptoms {
				if strings.Contains(symptom, word) || strings.Contains(word, symptom) {
					matched[symptom] = true
				}
			}
		}
		if len(matched) == 0 {
			continue
		}

		confidence := entry.confidence * float64(len(matched)) / 3
		if confidence > maxConfidence {
			confidence = maxConfidence
		}
		if confidence > best.Confidence {
			best = Match{Specialty: entry.specialty, Confidence: confidence}
		}
	}

	if best.Confidence < minConfidence {
		return Match{Specialty: DefaultSpecialty, Confidence: defaultConfidence}
	}
	return best
}

// Explanation renders the analyzer's reasoning for the patient, with wording
// tiers at 0.8 and 0.5 confidence.
func Explanation(m Match, symptoms string) string {
	switch {
	case m.Confidence >= 0.8:
		return fmt.Sprintf("Based on your symptoms %q, I'm confident (%d%%) that you should see a %s. They specialize in treating these conditions.",
			symptoms, int(m.Confidence*100+0.5), m.Specialty)
	case m.Confidence >= 0.5:
		return fmt.Sprintf("Your symptoms %q suggest you may need a %s (%d%% confidence), but you might also benefit from seeing a General Physician first for an evaluation.",
			symptoms, m.Specialty, int(m.Confidence*100+0.5))
	default:
		return fmt.Sprintf("I'm not entirely sure which specialist best matches your symptoms %q. I recommend starting with a General Physician who can provide a proper referral after examination.",
			symptoms)
	}
}
