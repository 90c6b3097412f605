package entity

import "time"

// Severidades de notificación.
const (
	SeverityInfo    = "INFO"
	SeverityWarning = "WARNING"
	SeveritySuccess = "SUCCESS"
	SeverityError   = "ERROR"
)

// Notification es un aviso dirigido a un usuario específico (UserID) o a
// todos los usuarios con alguno de los roles de Roles, dentro de una Company.
// Solo IsRead se muta después de creada.
type Notification struct {
	ID        string
	CompanyID string
	BranchID  string // opcional
	UserID    string // opcional: destinatario puntual
	Roles     []string
	Title     string
	Message   string
	Severity  string // INFO, WARNING, SUCCESS, ERROR
	IsRead    bool
	Data      map[string]string // para deep-linking en la app
	CreatedAt time.Time
}
