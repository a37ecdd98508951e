package model

import "strings"

// Patient пациент кабинета (patient-service)
type Patient struct {
	ID        int64  `json:"id"`
	CIN       string `json:"cin"`
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
	BirthDate string `json:"dateNaissance"`
	Sex       string `json:"sexe"`
	Phone     string `json:"numTel"`
	Insurance string `json:"typeMutuelle"`
	Email     string `json:"email"`
	Address   string `json:"adresse"`
	CabinetID int64  `json:"cabinetId"`
}

// UnknownPatientName подпись когда пациента не удалось загрузить
const UnknownPatientName = "Patient inconnu"

// FullName возвращает "Prénom Nom"
func (p *Patient) FullName() string {
	if p == nil {
		return UnknownPatientName
	}
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return UnknownPatientName
	}
	return name
}

// Consultation консультация врача (consultation-service)
type Consultation struct {
	ID            int64  `json:"id"`
	PatientID     int64  `json:"patientId"`
	DoctorID      int64  `json:"medecinId"`
	AppointmentID *int64 `json:"rendezVousId"`
	Date          string `json:"dateConsultation"`
	Type          string `json:"type"`
	Diagnosis     string `json:"diagnostic"`
	Observations  string `json:"observations"`
	// В списке консультаций ордонансы приходят без содержимого, полностью их отдаёт ordonnance-service
	Prescriptions []Prescription `json:"ordonnances,omitempty"`
}

type PrescriptionType string

const (
	PrescriptionDrugs PrescriptionType = "MEDICAMENT"
	PrescriptionExams PrescriptionType = "EXAMEN"
)

// Prescription ордонанс консультации (ordonnance-service)
type Prescription struct {
	ID             int64            `json:"id"`
	ConsultationID int64            `json:"consultationId"`
	Type           PrescriptionType `json:"type"`
	CreatedAt      string           `json:"dateCreation"`
	Text           *string          `json:"contenuLibre,omitempty"`
	Medications    []Medication     `json:"medicaments,omitempty"`
}

// HasContent false для заглушки из списка консультаций
func (p *Prescription) HasContent() bool {
	return p.Text != nil || len(p.Medications) > 0
}

type Medication struct {
	ID          int64  `json:"id"`
	Name        string `json:"nom"`
	Description string `json:"description,omitempty"`
	Dosage      string `json:"dosage,omitempty"`
	Duration    string `json:"duree,omitempty"`
}
