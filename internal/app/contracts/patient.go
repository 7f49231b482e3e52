package contracts

import (
	"context"

	"suma-service/internal/app/models"
)

type PatientRepository interface {
	CreatePatient(ctx context.Context, patient *models.Patient) (string, error)
	FindPatientByID(ctx context.Context, patientID string) (*models.Patient, error)
}
