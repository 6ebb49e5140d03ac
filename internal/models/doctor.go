package models

// DoctorProfile holds the professional fields collected by the doctor
// registration form.
type DoctorProfile struct {
	Specialization     string   `json:"specialization"`
	LicenseNumber      string   `json:"licenseNumber"`
	Experience         int      `json:"experience"`
	Qualifications     []string `json:"qualifications"`
	Bio                string   `json:"bio"`
	ConsultationFee    float64  `json:"consultationFee"`
	Languages          []string `json:"languages"`
	Rating             float64  `json:"rating"`
	TotalConsultations int      `json:"totalConsultations"`
	Verified           bool     `json:"verified"`
}

func (d DoctorProfile) Clone() DoctorProfile {
	if d.Qualifications != nil {
		d.Qualifications = append([]string(nil), d.Qualifications...)
	}
	if d.Languages != nil {
		d.Languages = append([]string(nil), d.Languages...)
	}
	return d
}

var Specializations = []string{
	"General Medicine",
	"Cardiology",
	"Dermatology",
	"Psychiatry",
	"Pediatrics",
	"Gynecology",
	"Orthopedics",
	"Neurology",
	"Ophthalmology",
	"ENT (Otolaryngology)",
	"Endocrinology",
	"Gastroenterology",
	"Pulmonology",
	"Nephrology",
	"Oncology",
	"Radiology",
	"Anesthesiology",
	"Pathology",
	"Emergency Medicine",
	"Family Medicine",
}

var Languages = []string{
	"English", "Spanish", "French", "German", "Italian", "Portuguese",
	"Dutch", "Arabic", "Hindi", "Mandarin", "Japanese", "Korean",
	"Russian", "Turkish", "Polish", "Swedish", "Norwegian",
}
