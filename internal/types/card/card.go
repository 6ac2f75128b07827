package card

import (
	"time"

	"kriyaConnectAPI/internal/accrual"
)

// IDCard is the printable membership card payload the app renders to PDF.
type IDCard struct {
	MemberID     string              `json:"member_id"`
	Name         string              `json:"name"`
	Role         string              `json:"role"`
	TeacherID    string              `json:"teacher_id"`
	MemberSince  time.Time           `json:"member_since"`
	StreakLevel  accrual.StreakLevel `json:"streak_level"`
	CoinLevel    accrual.CoinLevel   `json:"coin_level"`
	QRCodeBase64 string              `json:"qr_code_base64"`
	IssuedAt     time.Time           `json:"issued_at"`
}
