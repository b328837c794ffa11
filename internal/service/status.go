package service

import "github.com/MakKeitor/registro-api-moodle-backend/internal/models"

// ApplicationStatus is the status exposed to the admin UI. The stored
// five-value status collapses onto these four.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusInReview ApplicationStatus = "in_review"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

func StatusFromStored(status models.SolicitudStatus) ApplicationStatus {
	switch status {
	case models.SolicitudPending:
		return StatusPending
	case models.SolicitudInReview, models.SolicitudRevalidationPending:
		return StatusInReview
	case models.SolicitudApproved:
		return StatusApproved
	case models.SolicitudRejected:
		return StatusRejected
	default:
		return StatusPending
	}
}

// ParseTarget maps a requested transition target to the stored status.
// pending is never a valid target.
func ParseTarget(raw string) (models.SolicitudStatus, error) {
	switch ApplicationStatus(raw) {
	case StatusApproved:
		return models.SolicitudApproved, nil
	case StatusRejected:
		return models.SolicitudRejected, nil
	case StatusInReview:
		return models.SolicitudInReview, nil
	default:
		return "", ErrInvalidStatus
	}
}

const renglonDefaultLabel = "NO APLICA"

func RenglonLabel(renglon models.Renglon) string {
	switch renglon {
	case models.RenglonPersonalPermanente011:
		return "PERSONAL PERMANENTE 011"
	case models.RenglonGrupo029:
		return "GRUPO 029"
	case models.RenglonSubgrupo18Y022:
		return "SUBGRUPO 18 Y 022"
	case models.RenglonNoAplica:
		return "NO APLICA"
	case models.Renglon021:
		return "RENGLÓN 021"
	default:
		return renglonDefaultLabel
	}
}
