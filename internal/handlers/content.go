package handlers

// Static marketing and dashboard content. Nothing here is persisted.

type specialty struct {
	Name        string
	Description string
	Icon        string
	AverageFee  int
	DoctorCount int
}

type featuredDoctor struct {
	Name               string
	Specialization     string
	Experience         int
	Rating             float64
	ConsultationFee    int
	Avatar             string
	TotalConsultations int
	Languages          []string
	NextAvailable      string
}

type testimonial struct {
	Name    string
	Role    string
	Content string
	Rating  int
}

type appointment struct {
	DoctorName     string
	Specialization string
	Date           string
	Time           string
	Type           string
	Status         string
}

type consultation struct {
	DoctorName     string
	Specialization string
	Date           string
	Diagnosis      string
	Prescription   string
	Rating         int
}

type healthStats struct {
	TotalConsultations  int
	CompletedTreatments int
	ActiveConditions    int
	Prescriptions       int
}

type demoCredential struct {
	Email    string
	Password string
	Role     string
}

var homeSpecialties = []specialty{
	{"General Medicine", "Primary healthcare and routine check-ups", "🩺", 25, 150},
	{"Cardiology", "Heart and cardiovascular health", "❤️", 50, 45},
	{"Dermatology", "Skin, hair, and nail conditions", "🔬", 40, 32},
	{"Psychiatry", "Mental health and wellness", "🧠", 60, 28},
	{"Pediatrics", "Healthcare for children and infants", "👶", 35, 67},
	{"Gynecology", "Women's reproductive health", "🌸", 45, 41},
}

var featuredDoctors = []featuredDoctor{
	{"Dr. Sarah Johnson", "Cardiology", 12, 4.9, 50, "https://placehold.co/200x200?text=Dr.+Sarah+Johnson", 2847, []string{"English", "Spanish"}, "Today, 2:30 PM"},
	{"Dr. Michael Chen", "Dermatology", 8, 4.8, 40, "https://placehold.co/200x200?text=Dr.+Michael+Chen", 1923, []string{"English", "Mandarin"}, "Tomorrow, 10:00 AM"},
	{"Dr. Emily Rodriguez", "Pediatrics", 10, 5.0, 35, "https://placehold.co/200x200?text=Dr.+Emily+Rodriguez", 3156, []string{"English", "Spanish", "French"}, "Today, 4:15 PM"},
}

var testimonials = []testimonial{
	{"Jennifer Smith", "Patient", "DocConnect made it so easy to get medical advice from home. The doctors are professional and caring.", 5},
	{"Mark Williams", "Patient", "Quick, affordable, and reliable. I got the help I needed without the long wait times.", 5},
	{"Dr. David Kumar", "Doctor", "The platform allows me to help more patients efficiently. Great interface and support.", 5},
}

var demoCredentials = []demoCredential{
	{"patient@example.com", "patient123", "Patient"},
	{"doctor@example.com", "doctor123", "Doctor"},
}

var upcomingAppointments = []appointment{
	{"Dr. Sarah Johnson", "Cardiology", "2024-02-15", "10:30 AM", "Video Call", "confirmed"},
	{"Dr. Michael Chen", "Dermatology", "2024-02-18", "2:15 PM", "Video Call", "pending"},
}

var recentConsultations = []consultation{
	{"Dr. Emily Rodriguez", "General Medicine", "2024-01-28", "Common Cold", "Rest, fluids, and over-the-counter pain relief", 5},
	{"Dr. James Wilson", "Pediatrics", "2024-01-15", "Annual Checkup", "Continue current vitamins, schedule next checkup", 4},
}

var patientStats = healthStats{TotalConsultations: 24, CompletedTreatments: 20, ActiveConditions: 1, Prescriptions: 8}
