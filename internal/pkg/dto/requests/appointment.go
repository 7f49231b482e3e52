package requests

type MarkAttendance struct {
	Attendance string `json:"attendance" validate:"required,oneof=Atendido 'No Asistió'"`
}

type PatientConfirmation struct {
	Status string `json:"status" validate:"required,oneof=Confirmada Cancelada"`
}

type ClinicalNotes struct {
	Notes        string `json:"notes" validate:"required"`
	Prescription string `json:"prescription"`
}

type AppendMessage struct {
	Text string `json:"text" validate:"required,max=2000"`
}
